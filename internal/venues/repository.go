package venues

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
	List(ctx context.Context, filters shared.ListFilters) ([]Space, int, error)
	Get(ctx context.Context, id int64) (Space, error)
	Create(ctx context.Context, space Space) (Space, error)
	Update(ctx context.Context, id int64, space Space) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const spaceColumns = `id, name, description, capacity, base_price, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Space, int, error) {
	query := `SELECT ` + spaceColumns + ` FROM venue_spaces WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM venue_spaces WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND name ILIKE $1`
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

	var spaces []Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, 0, err
		}
		spaces = append(spaces, s)
	}
	return spaces, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Space, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+spaceColumns+` FROM venue_spaces WHERE id = $1`, id)
	s, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Space{}, httpx.ErrNotFound
		}
		return Space{}, err
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, space Space) (Space, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO venue_spaces (name, description, capacity, base_price, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+spaceColumns,
		space.Name, space.Description, space.Capacity, space.BasePrice, space.IsActive)
	s, err := scanSpace(row)
	if err != nil {
		return Space{}, mapConstraintError(err)
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int64, space Space) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE venue_spaces
		SET name = $1, description = $2, capacity = $3, base_price = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6`,
		space.Name, space.Description, space.Capacity, space.BasePrice, space.IsActive, id)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM venue_spaces WHERE id = $1`, id)
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

func scanSpace(row rowScanner) (Space, error) {
	var s Space
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Capacity, &s.BasePrice,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
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
	case "capacity":
		return "capacity " + dir
	case "base_price":
		return "base_price " + dir
	default:
		return "name " + dir
	}
}
