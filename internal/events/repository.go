package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fiesta-events/fiesta-events/internal/platform/db"
	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Event, error)
	GetByReference(ctx context.Context, ref uuid.UUID) (*Event, error)
	List(ctx context.Context, req ListEventsRequest) ([]EventWithDetails, int, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]EventWithDetails, error)
	Create(ctx context.Context, ev Event) (int64, error)
	Update(ctx context.Context, id int64, ev Event) error
	UpdateStatus(ctx context.Context, id int64, status EventStatus, reason *string) error
	InsertPartnerLine(ctx context.Context, line EventPartner) (int64, error)
	InsertSupplyLine(ctx context.Context, line EventSupply) (int64, error)
	DeleteLines(ctx context.Context, eventID int64) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const eventColumns = `id, reference, doc_number, name, client_id, space_id,
	start_date, end_date, start_time, end_time, same_day_event, status, notes,
	base_price, discount, discount_type, tax_rate, duration_hours,
	partners_cost, supplies_cost_to_venue, supplies_charge_to_client,
	subtotal, discount_amount, tax_amount, total_amount,
	cancel_reason, confirmed_at, cancelled_at, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return r.scanEventWithLines(ctx, row)
}

func (r *repository) GetByReference(ctx context.Context, ref uuid.UUID) (*Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE reference = $1`, ref)
	return r.scanEventWithLines(ctx, row)
}

func (r *repository) scanEventWithLines(ctx context.Context, row pgx.Row) (*Event, error) {
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if ev.Partners, err = r.partnerLines(ctx, ev.ID); err != nil {
		return nil, err
	}
	if ev.Supplies, err = r.supplyLines(ctx, ev.ID); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) List(ctx context.Context, req ListEventsRequest) ([]EventWithDetails, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	conditions = append(conditions, "1=1")

	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("e.client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}
	if req.SpaceID != nil {
		conditions = append(conditions, fmt.Sprintf("e.space_id = $%d", argPos))
		args = append(args, *req.SpaceID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("e.start_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("e.start_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.doc_number ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events e %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.reference, e.doc_number, e.name, e.client_id, e.space_id,
		       e.start_date, e.end_date, e.start_time, e.end_time, e.same_day_event,
		       e.status, e.notes,
		       e.base_price, e.discount, e.discount_type, e.tax_rate, e.duration_hours,
		       e.partners_cost, e.supplies_cost_to_venue, e.supplies_charge_to_client,
		       e.subtotal, e.discount_amount, e.tax_amount, e.total_amount,
		       e.cancel_reason, e.confirmed_at, e.cancelled_at, e.created_at, e.updated_at,
		       c.name AS client_name,
		       v.name AS space_name
		FROM events e
		JOIN clients c ON e.client_id = c.id
		JOIN venue_spaces v ON e.space_id = v.id
		%s
		ORDER BY e.start_date DESC, e.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []EventWithDetails
	for rows.Next() {
		var e EventWithDetails
		if err := rows.Scan(
			&e.ID, &e.Reference, &e.DocNumber, &e.Name, &e.ClientID, &e.SpaceID,
			&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.SameDayEvent,
			&e.Status, &e.Notes,
			&e.BasePrice, &e.Discount, &e.DiscountType, &e.TaxRate, &e.DurationHours,
			&e.PartnersCost, &e.SuppliesCostToVenue, &e.SuppliesChargeToClient,
			&e.Subtotal, &e.DiscountAmount, &e.TaxAmount, &e.TotalAmount,
			&e.CancelReason, &e.ConfirmedAt, &e.CancelledAt, &e.CreatedAt, &e.UpdatedAt,
			&e.ClientName, &e.SpaceName,
		); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// ListStartingBetween feeds the reminder scan; only confirmed events get
// reminders.
func (r *repository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]EventWithDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.reference, e.doc_number, e.name, e.start_date, e.start_time, e.status,
		       c.name AS client_name,
		       v.name AS space_name
		FROM events e
		JOIN clients c ON e.client_id = c.id
		JOIN venue_spaces v ON e.space_id = v.id
		WHERE e.status = $1 AND e.start_date >= $2 AND e.start_date < $3
		ORDER BY e.start_date, e.start_time
	`, EventStatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventWithDetails
	for rows.Next() {
		var e EventWithDetails
		if err := rows.Scan(&e.ID, &e.Reference, &e.DocNumber, &e.Name,
			&e.StartDate, &e.StartTime, &e.Status, &e.ClientName, &e.SpaceName); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *repository) Create(ctx context.Context, ev Event) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (reference, doc_number, name, client_id, space_id,
			start_date, end_date, start_time, end_time, same_day_event, status, notes,
			base_price, discount, discount_type, tax_rate, duration_hours,
			partners_cost, supplies_cost_to_venue, supplies_charge_to_client,
			subtotal, discount_amount, tax_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id`,
		ev.Reference, ev.DocNumber, ev.Name, ev.ClientID, ev.SpaceID,
		ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime, ev.SameDayEvent, ev.Status, ev.Notes,
		ev.BasePrice, ev.Discount, ev.DiscountType, ev.TaxRate, ev.DurationHours,
		ev.PartnersCost, ev.SuppliesCostToVenue, ev.SuppliesChargeToClient,
		ev.Subtotal, ev.DiscountAmount, ev.TaxAmount, ev.TotalAmount,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraintError(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, ev Event) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events
		SET name = $1, client_id = $2, space_id = $3,
		    start_date = $4, end_date = $5, start_time = $6, end_time = $7,
		    same_day_event = $8, notes = $9,
		    base_price = $10, discount = $11, discount_type = $12, tax_rate = $13,
		    duration_hours = $14, partners_cost = $15,
		    supplies_cost_to_venue = $16, supplies_charge_to_client = $17,
		    subtotal = $18, discount_amount = $19, tax_amount = $20, total_amount = $21,
		    updated_at = NOW()
		WHERE id = $22`,
		ev.Name, ev.ClientID, ev.SpaceID,
		ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime,
		ev.SameDayEvent, ev.Notes,
		ev.BasePrice, ev.Discount, ev.DiscountType, ev.TaxRate,
		ev.DurationHours, ev.PartnersCost,
		ev.SuppliesCostToVenue, ev.SuppliesChargeToClient,
		ev.Subtotal, ev.DiscountAmount, ev.TaxAmount, ev.TotalAmount, id)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status EventStatus, reason *string) error {
	query := `UPDATE events SET status = $1, updated_at = NOW()`
	switch status {
	case EventStatusConfirmed:
		query += `, confirmed_at = NOW()`
	case EventStatusCancelled:
		query += `, cancelled_at = NOW(), cancel_reason = $3`
	}
	query += ` WHERE id = $2`

	var tag pgconn.CommandTag
	var err error
	if status == EventStatusCancelled {
		tag, err = r.db.Exec(ctx, query, status, id, reason)
	} else {
		tag, err = r.db.Exec(ctx, query, status, id)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) InsertPartnerLine(ctx context.Context, line EventPartner) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_partners (event_id, partner_id, service, price_type, rate, hours, cost, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		line.EventID, line.PartnerID, line.Service, line.PriceType,
		line.Rate, line.Hours, line.Cost, line.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertSupplyLine(ctx context.Context, line EventSupply) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_supplies (event_id, supply_id, quantity, cost_per_unit, charge_per_unit, pricing_type, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		line.EventID, line.SupplyID, line.Quantity,
		line.CostPerUnit, line.ChargePerUnit, line.PricingType, line.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteLines(ctx context.Context, eventID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM event_partners WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM event_supplies WHERE event_id = $1`, eventID)
	return err
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	// EV-{YY}{MM}-{SEQ}
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "EV", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EV-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) partnerLines(ctx context.Context, eventID int64) ([]EventPartner, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, partner_id, service, price_type, rate, hours, cost, line_order
		FROM event_partners WHERE event_id = $1 ORDER BY line_order`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []EventPartner
	for rows.Next() {
		var l EventPartner
		if err := rows.Scan(&l.ID, &l.EventID, &l.PartnerID, &l.Service,
			&l.PriceType, &l.Rate, &l.Hours, &l.Cost, &l.LineOrder); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) supplyLines(ctx context.Context, eventID int64) ([]EventSupply, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, supply_id, quantity, cost_per_unit, charge_per_unit, pricing_type, line_order
		FROM event_supplies WHERE event_id = $1 ORDER BY line_order`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []EventSupply
	for rows.Next() {
		var l EventSupply
		if err := rows.Scan(&l.ID, &l.EventID, &l.SupplyID, &l.Quantity,
			&l.CostPerUnit, &l.ChargePerUnit, &l.PricingType, &l.LineOrder); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Reference, &e.DocNumber, &e.Name, &e.ClientID, &e.SpaceID,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.SameDayEvent,
		&e.Status, &e.Notes,
		&e.BasePrice, &e.Discount, &e.DiscountType, &e.TaxRate, &e.DurationHours,
		&e.PartnersCost, &e.SuppliesCostToVenue, &e.SuppliesChargeToClient,
		&e.Subtotal, &e.DiscountAmount, &e.TaxAmount, &e.TotalAmount,
		&e.CancelReason, &e.ConfirmedAt, &e.CancelledAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}
