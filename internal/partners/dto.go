package partners

import "github.com/fiesta-events/fiesta-events/internal/pricing"

// UpsertPartnerRequest carries partner fields for create and update.
type UpsertPartnerRequest struct {
	Name             string            `json:"name" validate:"required,max=200"`
	Service          string            `json:"service" validate:"required,max=200"`
	DefaultPriceType pricing.PriceType `json:"default_price_type" validate:"required,oneof=hourly fixed"`
	DefaultRate      float64           `json:"default_rate" validate:"gte=0"`
	Email            string            `json:"email" validate:"omitempty,email,max=200"`
	Phone            string            `json:"phone" validate:"omitempty,max=40"`
	IsActive         *bool             `json:"is_active,omitempty"`
}
