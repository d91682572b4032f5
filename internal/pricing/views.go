package pricing

// ReviewView is the projection consumed by the review/summary screens and the
// live contract and invoice previews. It exposes every field name any
// consumer historically read, so alias pairs carry the same value by
// construction: PartnersTotal mirrors PartnersCost, SuppliesCost mirrors
// SuppliesChargeToClient, and GrandTotal and TotalPrice mirror Total. A new
// call-site field name belongs here, not in Quote.
type ReviewView struct {
	DurationHours          int               `json:"durationHours"`
	BasePrice              float64           `json:"basePrice"`
	PartnersCost           float64           `json:"partnersCost"`
	PartnersTotal          float64           `json:"partnersTotal"`
	SuppliesCostToVenue    float64           `json:"suppliesCostToVenue"`
	SuppliesChargeToClient float64           `json:"suppliesChargeToClient"`
	SuppliesCost           float64           `json:"suppliesCost"`
	SuppliesMargin         float64           `json:"suppliesMargin"`
	Subtotal               float64           `json:"subtotal"`
	SubtotalBeforeDiscount float64           `json:"subtotalBeforeDiscount"`
	DiscountAmount         float64           `json:"discountAmount"`
	SubtotalAfterDiscount  float64           `json:"subtotalAfterDiscount"`
	TaxAmount              float64           `json:"taxAmount"`
	Total                  float64           `json:"total"`
	GrandTotal             float64           `json:"grandTotal"`
	TotalPrice             float64           `json:"totalPrice"`
	Partners               []PartnerCostView `json:"partners"`
}

// PartnerCostView mirrors a partner cost line with its legacy alias
// calculatedCost.
type PartnerCostView struct {
	Partner        int64   `json:"partner"`
	Service        string  `json:"service"`
	Hours          float64 `json:"hours,omitempty"`
	Cost           float64 `json:"cost"`
	CalculatedCost float64 `json:"calculatedCost"`
}

// NewReviewView projects a canonical quote into the alias-bearing review
// shape. It performs no computation beyond object shaping.
func NewReviewView(q Quote) ReviewView {
	partners := make([]PartnerCostView, 0, len(q.Partners))
	for _, line := range q.Partners {
		partners = append(partners, PartnerCostView{
			Partner:        line.Partner,
			Service:        line.Service,
			Hours:          line.Hours,
			Cost:           line.Cost,
			CalculatedCost: line.Cost,
		})
	}
	return ReviewView{
		DurationHours:          q.DurationHours,
		BasePrice:              q.BasePrice,
		PartnersCost:           q.PartnersCost,
		PartnersTotal:          q.PartnersCost,
		SuppliesCostToVenue:    q.SuppliesCostToVenue,
		SuppliesChargeToClient: q.SuppliesChargeToClient,
		SuppliesCost:           q.SuppliesChargeToClient,
		SuppliesMargin:         q.SuppliesMargin,
		Subtotal:               q.Subtotal,
		SubtotalBeforeDiscount: q.Subtotal,
		DiscountAmount:         q.DiscountAmount,
		SubtotalAfterDiscount:  q.SubtotalAfterDiscount,
		TaxAmount:              q.TaxAmount,
		Total:                  q.Total,
		GrandTotal:             q.Total,
		TotalPrice:             q.Total,
		Partners:               partners,
	}
}

// SubmissionPricing is the pricing block of the event-service payload built
// at submit time.
type SubmissionPricing struct {
	BasePrice    float64      `json:"basePrice"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discountType"`
	TaxRate      float64      `json:"taxRate"`
	TotalAmount  float64      `json:"totalAmount"`
}

// SubmissionPartner is one partner line of the event-service payload.
type SubmissionPartner struct {
	Partner int64    `json:"partner"`
	Service string   `json:"service"`
	Cost    float64  `json:"cost"`
	Hours   *float64 `json:"hours,omitempty"`
}

// NewSubmission shapes the draft and its computed quote into the payload the
// event-creation API accepts. Discount type defaults to fixed when unset so
// the backend never receives an empty enum.
func NewSubmission(draft EventDraft, q Quote) (SubmissionPricing, []SubmissionPartner) {
	discountType := draft.Pricing.DiscountType
	if discountType == "" {
		discountType = DiscountTypeFixed
	}

	pricing := SubmissionPricing{
		BasePrice:    q.BasePrice,
		Discount:     draft.Pricing.Discount.Float(),
		DiscountType: discountType,
		TaxRate:      draft.Pricing.TaxRate.Float(),
		TotalAmount:  q.Total,
	}

	partners := make([]SubmissionPartner, 0, len(q.Partners))
	for _, line := range q.Partners {
		p := SubmissionPartner{Partner: line.Partner, Service: line.Service, Cost: line.Cost}
		if line.Hours > 0 {
			hours := line.Hours
			p.Hours = &hours
		}
		partners = append(partners, p)
	}
	return pricing, partners
}
