package partners

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
	"github.com/fiesta-events/fiesta-events/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Partner, int, error)
	Get(ctx context.Context, id int64) (Partner, error)
	Create(ctx context.Context, partner Partner) (Partner, error)
	Update(ctx context.Context, id int64, partner Partner) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const partnerColumns = `id, name, service, default_price_type, default_rate, email, phone, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Partner, int, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR service ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM partners WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR service ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		partners = append(partners, p)
	}
	return partners, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Partner, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
	p, err := scanPartner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Partner{}, httpx.ErrNotFound
		}
		return Partner{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, partner Partner) (Partner, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO partners (name, service, default_price_type, default_rate, email, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+partnerColumns,
		partner.Name, partner.Service, partner.DefaultPriceType, partner.DefaultRate,
		partner.Email, partner.Phone, partner.IsActive)
	p, err := scanPartner(row)
	if err != nil {
		return Partner{}, mapConstraintError(err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, partner Partner) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE partners
		SET name = $1, service = $2, default_price_type = $3, default_rate = $4,
		    email = $5, phone = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8`,
		partner.Name, partner.Service, partner.DefaultPriceType, partner.DefaultRate,
		partner.Email, partner.Phone, partner.IsActive, id)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row rowScanner) (Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.Name, &p.Service, &p.DefaultPriceType, &p.DefaultRate,
		&p.Email, &p.Phone, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "service":
		return "service " + dir
	case "default_rate":
		return "default_rate " + dir
	default:
		return "name " + dir
	}
}
