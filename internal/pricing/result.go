package pricing

// Quote is the canonical quotation result. Each value appears exactly once;
// the legacy alias names expected by older screens (partnersTotal,
// suppliesCost, grandTotal, totalPrice, subtotalBeforeDiscount) are produced
// by the view adapters in views.go, never duplicated here.
//
// SuppliesMargin may be negative: the operator is allowed to lose money on a
// chargeable supply whose charge per unit is below its cost per unit.
type Quote struct {
	DurationHours          int           `json:"durationHours"`
	BasePrice              float64       `json:"basePrice"`
	PartnersCost           float64       `json:"partnersCost"`
	SuppliesCostToVenue    float64       `json:"suppliesCostToVenue"`
	SuppliesChargeToClient float64       `json:"suppliesChargeToClient"`
	SuppliesMargin         float64       `json:"suppliesMargin"`
	Subtotal               float64       `json:"subtotal"`
	DiscountAmount         float64       `json:"discountAmount"`
	SubtotalAfterDiscount  float64       `json:"subtotalAfterDiscount"`
	TaxAmount              float64       `json:"taxAmount"`
	Total                  float64       `json:"total"`
	Partners               []PartnerCost `json:"partners,omitempty"`
}
