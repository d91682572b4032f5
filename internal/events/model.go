package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/fiesta-events/fiesta-events/internal/pricing"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event is a booked (or drafted) venue event. The pricing block is a
// snapshot computed server-side from the submitted draft at create/update
// time; it is never accepted from the client, so the live preview and the
// persisted totals come from the same calculation.
type Event struct {
	ID           int64       `json:"id"`
	Reference    uuid.UUID   `json:"reference"`
	DocNumber    string      `json:"doc_number"`
	Name         string      `json:"name"`
	ClientID     int64       `json:"client_id"`
	SpaceID      int64       `json:"space_id"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	StartTime    string      `json:"start_time"`
	EndTime      string      `json:"end_time"`
	SameDayEvent bool        `json:"same_day_event"`
	Status       EventStatus `json:"status"`
	Notes        *string     `json:"notes,omitempty"`

	BasePrice              float64              `json:"base_price"`
	Discount               float64              `json:"discount"`
	DiscountType           pricing.DiscountType `json:"discount_type"`
	TaxRate                float64              `json:"tax_rate"`
	DurationHours          int                  `json:"duration_hours"`
	PartnersCost           float64              `json:"partners_cost"`
	SuppliesCostToVenue    float64              `json:"supplies_cost_to_venue"`
	SuppliesChargeToClient float64              `json:"supplies_charge_to_client"`
	Subtotal               float64              `json:"subtotal"`
	DiscountAmount         float64              `json:"discount_amount"`
	TaxAmount              float64              `json:"tax_amount"`
	TotalAmount            float64              `json:"total_amount"`

	CancelReason *string    `json:"cancel_reason,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Partners []EventPartner `json:"partners,omitempty"`
	Supplies []EventSupply  `json:"supplies,omitempty"`
}

// EventPartner is a persisted partner allocation line with its resolved cost.
type EventPartner struct {
	ID        int64             `json:"id"`
	EventID   int64             `json:"event_id"`
	PartnerID int64             `json:"partner_id"`
	Service   string            `json:"service"`
	PriceType pricing.PriceType `json:"price_type"`
	Rate      float64           `json:"rate"`
	Hours     *float64          `json:"hours,omitempty"`
	Cost      float64           `json:"cost"`
	LineOrder int               `json:"line_order"`
}

// EventSupply is a persisted supply allocation line.
type EventSupply struct {
	ID            int64                 `json:"id"`
	EventID       int64                 `json:"event_id"`
	SupplyID      int64                 `json:"supply_id"`
	Quantity      int                   `json:"quantity"`
	CostPerUnit   float64               `json:"cost_per_unit"`
	ChargePerUnit float64               `json:"charge_per_unit"`
	PricingType   pricing.SupplyPricing `json:"pricing_type"`
	LineOrder     int                   `json:"line_order"`
}

// EventWithDetails joins the names list screens display.
type EventWithDetails struct {
	Event
	ClientName string `json:"client_name"`
	SpaceName  string `json:"space_name"`
}
