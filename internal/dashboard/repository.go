package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthRevenue, error)
	Upcoming(ctx context.Context, from, to time.Time) ([]UpcomingEvent, error)
	TopClients(ctx context.Context, since time.Time, limit int) ([]ClientRevenue, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM events GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// MonthlyRevenue counts only events that materialised: confirmed or
// completed. Cancelled and draft totals are noise for revenue.
func (r *repository) MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthRevenue, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', start_date), 'YYYY-MM') AS month,
		       COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM events
		WHERE status IN ('CONFIRMED', 'COMPLETED') AND start_date >= $1
		GROUP BY 1
		ORDER BY 1`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Events, &m.Revenue); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func (r *repository) Upcoming(ctx context.Context, from, to time.Time) ([]UpcomingEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.doc_number, e.name, c.name, v.name, e.start_date, e.start_time, e.status
		FROM events e
		JOIN clients c ON e.client_id = c.id
		JOIN venue_spaces v ON e.space_id = v.id
		WHERE e.status = 'CONFIRMED' AND e.start_date >= $1 AND e.start_date < $2
		ORDER BY e.start_date, e.start_time
		LIMIT 20`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []UpcomingEvent
	for rows.Next() {
		var e UpcomingEvent
		if err := rows.Scan(&e.ID, &e.DocNumber, &e.Name, &e.ClientName, &e.SpaceName,
			&e.StartDate, &e.StartTime, &e.Status); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *repository) TopClients(ctx context.Context, since time.Time, limit int) ([]ClientRevenue, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, COUNT(*), COALESCE(SUM(e.total_amount), 0) AS revenue
		FROM events e
		JOIN clients c ON e.client_id = c.id
		WHERE e.status IN ('CONFIRMED', 'COMPLETED') AND e.start_date >= $1
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []ClientRevenue
	for rows.Next() {
		var c ClientRevenue
		if err := rows.Scan(&c.ClientID, &c.ClientName, &c.Events, &c.Revenue); err != nil {
			return nil, err
		}
		top = append(top, c)
	}
	return top, rows.Err()
}
