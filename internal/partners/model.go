package partners

import (
	"time"

	"github.com/fiesta-events/fiesta-events/internal/pricing"
)

// Partner is a third-party service provider (caterer, photographer, DJ)
// allocated to events. DefaultPriceType and DefaultRate pre-fill new
// allocations in the booking wizard; the draft may override both.
type Partner struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Service          string            `json:"service"`
	DefaultPriceType pricing.PriceType `json:"default_price_type"`
	DefaultRate      float64           `json:"default_rate"`
	Email            string            `json:"email,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	IsActive         bool              `json:"is_active"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
