package dashboard

import "time"

// Summary is the aggregate snapshot behind the landing dashboard.
type Summary struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	StatusCounts   []StatusCount   `json:"status_counts"`
	MonthlyRevenue []MonthRevenue  `json:"monthly_revenue"`
	Upcoming       []UpcomingEvent `json:"upcoming"`
	TopClients     []ClientRevenue `json:"top_clients"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// MonthRevenue sums confirmed and completed event totals per start month.
type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Events  int64   `json:"events"`
	Revenue float64 `json:"revenue"`
}

type UpcomingEvent struct {
	ID         int64     `json:"id"`
	DocNumber  string    `json:"doc_number"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	SpaceName  string    `json:"space_name"`
	StartDate  time.Time `json:"start_date"`
	StartTime  string    `json:"start_time"`
	Status     string    `json:"status"`
}

type ClientRevenue struct {
	ClientID   int64   `json:"client_id"`
	ClientName string  `json:"client_name"`
	Events     int64   `json:"events"`
	Revenue    float64 `json:"revenue"`
}
