package pricing

import "testing"

func sampleQuote() Quote {
	return Compute(EventDraft{
		StartDate:    "2026-06-01",
		StartTime:    "14:00",
		EndTime:      "19:30",
		SameDayEvent: true,
		Partners: []PartnerAllocation{
			{Partner: 7, Service: "Catering", PriceType: PriceTypeHourly, Rate: 45},
			{Partner: 9, Service: "DJ", PriceType: PriceTypeFixed, Rate: 350},
		},
		Supplies: []SupplyAllocation{
			{Supply: 1, QuantityRequested: 12, CostPerUnit: 2, ChargePerUnit: 3.5, PricingType: SupplyPricingChargeable},
			{Supply: 2, QuantityRequested: 6, CostPerUnit: 1, PricingType: SupplyPricingOptional},
		},
		Pricing: Terms{BasePrice: 900, Discount: 5, DiscountType: DiscountTypePercentage, TaxRate: 19},
	})
}

func TestReviewViewAliasesAgree(t *testing.T) {
	q := sampleQuote()
	view := NewReviewView(q)

	if view.Total != view.GrandTotal || view.Total != view.TotalPrice {
		t.Fatalf("total aliases diverge: %v / %v / %v", view.Total, view.GrandTotal, view.TotalPrice)
	}
	if view.PartnersCost != view.PartnersTotal {
		t.Fatalf("partner aliases diverge: %v / %v", view.PartnersCost, view.PartnersTotal)
	}
	if view.SuppliesChargeToClient != view.SuppliesCost {
		t.Fatalf("supply aliases diverge: %v / %v", view.SuppliesChargeToClient, view.SuppliesCost)
	}
	if view.Subtotal != view.SubtotalBeforeDiscount {
		t.Fatalf("subtotal aliases diverge: %v / %v", view.Subtotal, view.SubtotalBeforeDiscount)
	}
	if view.Total != q.Total {
		t.Fatalf("view total %v does not match quote total %v", view.Total, q.Total)
	}

	for _, p := range view.Partners {
		if p.Cost != p.CalculatedCost {
			t.Fatalf("partner cost aliases diverge: %+v", p)
		}
	}
}

func TestSubmissionPayloadShape(t *testing.T) {
	stored := Number(275)
	draft := EventDraft{
		StartDate:    "2026-06-01",
		StartTime:    "10:00",
		EndTime:      "14:00",
		SameDayEvent: true,
		Partners: []PartnerAllocation{
			{Partner: 3, Service: "Florist", PriceType: PriceTypeFixed, Rate: 300, Cost: &stored},
			{Partner: 4, Service: "Photo", PriceType: PriceTypeHourly, Rate: 60},
		},
		Pricing: Terms{BasePrice: 500, Discount: 40, TaxRate: 19},
	}
	q := Compute(draft)

	pricing, partners := NewSubmission(draft, q)

	if pricing.TotalAmount != q.Total {
		t.Fatalf("submission total %v does not match computed total %v", pricing.TotalAmount, q.Total)
	}
	if pricing.DiscountType != DiscountTypeFixed {
		t.Fatalf("unset discount type must submit as fixed, got %q", pricing.DiscountType)
	}
	if pricing.BasePrice != 500 || pricing.Discount != 40 || pricing.TaxRate != 19 {
		t.Fatalf("unexpected submission pricing: %+v", pricing)
	}

	if len(partners) != 2 {
		t.Fatalf("expected 2 submission partners, got %d", len(partners))
	}
	if partners[0].Cost != 275 || partners[0].Hours != nil {
		t.Fatalf("fixed partner line wrong: %+v", partners[0])
	}
	if partners[1].Cost != 240 || partners[1].Hours == nil || *partners[1].Hours != 4 {
		t.Fatalf("hourly partner line wrong: %+v", partners[1])
	}
}
