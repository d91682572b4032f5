package supplies

import (
	"time"

	"github.com/fiesta-events/fiesta-events/internal/pricing"
)

// Supply is a consumable or inventory item allocated to events. CostPerUnit
// is what the operator pays; ChargePerUnit is the client-facing price when
// the line is chargeable.
type Supply struct {
	ID                 int64                 `json:"id"`
	Name               string                `json:"name"`
	Unit               string                `json:"unit"`
	CostPerUnit        float64               `json:"cost_per_unit"`
	ChargePerUnit      float64               `json:"charge_per_unit"`
	DefaultPricingType pricing.SupplyPricing `json:"default_pricing_type"`
	StockOnHand        int                   `json:"stock_on_hand"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}
