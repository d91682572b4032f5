package supplies

import "github.com/fiesta-events/fiesta-events/internal/pricing"

// UpsertSupplyRequest carries supply fields for create and update.
type UpsertSupplyRequest struct {
	Name               string                `json:"name" validate:"required,max=200"`
	Unit               string                `json:"unit" validate:"required,max=20"`
	CostPerUnit        float64               `json:"cost_per_unit" validate:"gte=0"`
	ChargePerUnit      float64               `json:"charge_per_unit" validate:"gte=0"`
	DefaultPricingType pricing.SupplyPricing `json:"default_pricing_type" validate:"required,oneof=included chargeable optional"`
	StockOnHand        int                   `json:"stock_on_hand" validate:"gte=0"`
}
