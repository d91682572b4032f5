package pricing

import (
	"math"
	"time"
)

const (
	draftTimeLayout = "2006-01-02T15:04"

	// fallbackDurationHours is substituted whenever the date range is
	// unparseable or non-positive. Duration is never zero or negative.
	fallbackDurationHours = 1
)

// ResolveDurationHours derives the event length in whole hours. The effective
// end date is the start date for same-day events, otherwise the end date
// falling back to the start date. Partial hours round up: a 30-minute event
// costs a full hour of partner time.
func ResolveDurationHours(startDate, startTime, endDate, endTime string, sameDay bool) int {
	effectiveEnd := endDate
	if sameDay || effectiveEnd == "" {
		effectiveEnd = startDate
	}

	start, err := time.ParseInLocation(draftTimeLayout, startDate+"T"+startTime, time.Local)
	if err != nil {
		return fallbackDurationHours
	}
	end, err := time.ParseInLocation(draftTimeLayout, effectiveEnd+"T"+endTime, time.Local)
	if err != nil {
		return fallbackDurationHours
	}

	span := end.Sub(start)
	if span <= 0 {
		return fallbackDurationHours
	}
	return int(math.Ceil(span.Hours()))
}

// PartnerCost is the resolved cost of a single partner allocation. Hours is
// the effective billed duration for hourly partners and zero for fixed fees.
type PartnerCost struct {
	Partner int64   `json:"partner"`
	Service string  `json:"service"`
	Hours   float64 `json:"hours,omitempty"`
	Cost    float64 `json:"cost"`
}

func resolvePartnerCost(p PartnerAllocation, durationHours int) PartnerCost {
	line := PartnerCost{Partner: p.Partner, Service: p.Service}

	switch p.PriceType {
	case PriceTypeHourly:
		hours := p.Hours.Float()
		if hours <= 0 {
			hours = float64(durationHours)
		}
		line.Hours = hours
		line.Cost = p.Rate.Float() * hours
	default:
		// Fixed fee. A stored cost wins over the catalog rate.
		if p.Cost != nil {
			line.Cost = p.Cost.Float()
		} else {
			line.Cost = p.Rate.Float()
		}
	}
	return line
}

// PartnerCostLines resolves every partner allocation against the event
// duration without mutating the input.
func PartnerCostLines(partners []PartnerAllocation, durationHours int) []PartnerCost {
	lines := make([]PartnerCost, 0, len(partners))
	for _, p := range partners {
		lines = append(lines, resolvePartnerCost(p, durationHours))
	}
	return lines
}

// SumPartnerCosts totals all partner costs for the given event duration.
func SumPartnerCosts(partners []PartnerAllocation, durationHours int) float64 {
	var total float64
	for _, p := range partners {
		total += resolvePartnerCost(p, durationHours).Cost
	}
	return total
}

// SumSupplyCostToVenue totals the operator-side procurement cost over all
// supplies regardless of pricing type.
func SumSupplyCostToVenue(supplies []SupplyAllocation) float64 {
	var total float64
	for _, s := range supplies {
		total += s.CostPerUnit.Float() * s.QuantityRequested.Float()
	}
	return total
}

// SumSupplyChargeToClient totals the client bill over chargeable supplies
// only. Included and optional lines contribute zero.
func SumSupplyChargeToClient(supplies []SupplyAllocation) float64 {
	var total float64
	for _, s := range supplies {
		if s.PricingType != SupplyPricingChargeable {
			continue
		}
		total += s.ChargePerUnit.Float() * s.QuantityRequested.Float()
	}
	return total
}

// DiscountTax is the output of the discount-then-tax stage.
type DiscountTax struct {
	DiscountAmount        float64
	SubtotalAfterDiscount float64
	TaxAmount             float64
	Total                 float64
}

// ApplyDiscountAndTax resolves the discount against the subtotal, clamps the
// discounted subtotal at zero, then applies tax. Tax is computed strictly
// after the discount; the order must not be swapped.
func ApplyDiscountAndTax(subtotal float64, discountType DiscountType, discountValue, taxRatePercent float64) DiscountTax {
	var discountAmount float64
	if discountType == DiscountTypePercentage {
		discountAmount = subtotal * (discountValue / 100)
	} else {
		discountAmount = discountValue
	}

	afterDiscount := subtotal - discountAmount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	taxAmount := afterDiscount * (taxRatePercent / 100)

	return DiscountTax{
		DiscountAmount:        discountAmount,
		SubtotalAfterDiscount: afterDiscount,
		TaxAmount:             taxAmount,
		Total:                 afterDiscount + taxAmount,
	}
}

// Compute runs the full quotation pipeline over a draft: duration, partner
// and supply aggregation, discount, tax, and total assembly. It is pure and
// idempotent; the same draft always yields the same quote.
func Compute(draft EventDraft) Quote {
	hours := ResolveDurationHours(draft.StartDate, draft.StartTime, draft.EndDate, draft.EndTime, draft.SameDayEvent)

	partnerLines := PartnerCostLines(draft.Partners, hours)
	var partnersCost float64
	for _, line := range partnerLines {
		partnersCost += line.Cost
	}

	costToVenue := SumSupplyCostToVenue(draft.Supplies)
	chargeToClient := SumSupplyChargeToClient(draft.Supplies)

	basePrice := draft.Pricing.BasePrice.Float()
	subtotal := basePrice + partnersCost + chargeToClient

	dt := ApplyDiscountAndTax(subtotal, draft.Pricing.DiscountType, draft.Pricing.Discount.Float(), draft.Pricing.TaxRate.Float())

	return Quote{
		DurationHours:          hours,
		BasePrice:              basePrice,
		PartnersCost:           partnersCost,
		SuppliesCostToVenue:    costToVenue,
		SuppliesChargeToClient: chargeToClient,
		SuppliesMargin:         chargeToClient - costToVenue,
		Subtotal:               subtotal,
		DiscountAmount:         dt.DiscountAmount,
		SubtotalAfterDiscount:  dt.SubtotalAfterDiscount,
		TaxAmount:              dt.TaxAmount,
		Total:                  dt.Total,
		Partners:               partnerLines,
	}
}
