package supplies

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
	List(ctx context.Context, filters shared.ListFilters) ([]Supply, int, error)
	Get(ctx context.Context, id int64) (Supply, error)
	Create(ctx context.Context, supply Supply) (Supply, error)
	Update(ctx context.Context, id int64, supply Supply) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const supplyColumns = `id, name, unit, cost_per_unit, charge_per_unit, default_pricing_type, stock_on_hand, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Supply, int, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM supplies WHERE 1=1`
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

	var supplies []Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, 0, err
		}
		supplies = append(supplies, s)
	}
	return supplies, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Supply, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE id = $1`, id)
	s, err := scanSupply(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supply{}, httpx.ErrNotFound
		}
		return Supply{}, err
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, supply Supply) (Supply, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO supplies (name, unit, cost_per_unit, charge_per_unit, default_pricing_type, stock_on_hand)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+supplyColumns,
		supply.Name, supply.Unit, supply.CostPerUnit, supply.ChargePerUnit,
		supply.DefaultPricingType, supply.StockOnHand)
	s, err := scanSupply(row)
	if err != nil {
		return Supply{}, mapConstraintError(err)
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int64, supply Supply) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE supplies
		SET name = $1, unit = $2, cost_per_unit = $3, charge_per_unit = $4,
		    default_pricing_type = $5, stock_on_hand = $6, updated_at = NOW()
		WHERE id = $7`,
		supply.Name, supply.Unit, supply.CostPerUnit, supply.ChargePerUnit,
		supply.DefaultPricingType, supply.StockOnHand, id)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
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

func scanSupply(row rowScanner) (Supply, error) {
	var s Supply
	err := row.Scan(&s.ID, &s.Name, &s.Unit, &s.CostPerUnit, &s.ChargePerUnit,
		&s.DefaultPricingType, &s.StockOnHand, &s.CreatedAt, &s.UpdatedAt)
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
	case "cost_per_unit":
		return "cost_per_unit " + dir
	case "charge_per_unit":
		return "charge_per_unit " + dir
	default:
		return "name " + dir
	}
}
