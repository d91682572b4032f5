package venues

import "time"

// Space is a bookable venue space. BasePrice is the rental fee per event
// before partners, supplies, discount, or tax; it pre-fills the booking
// wizard's base price.
type Space struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity"`
	BasePrice   float64   `json:"base_price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
