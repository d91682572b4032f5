package pricing

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResolveDurationHoursFallback(t *testing.T) {
	cases := []struct {
		name                                     string
		startDate, startTime, endDate, endTime   string
		sameDay                                  bool
	}{
		{"empty draft", "", "", "", "", false},
		{"garbage date", "not-a-date", "10:00", "2026-06-01", "12:00", false},
		{"garbage time", "2026-06-01", "1x:00", "2026-06-01", "12:00", false},
		{"end equals start", "2026-06-01", "10:00", "2026-06-01", "10:00", false},
		{"end before start", "2026-06-01", "14:00", "2026-06-01", "10:00", false},
		{"same day ignores later end date", "2026-06-01", "14:00", "2026-06-02", "10:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDurationHours(tc.startDate, tc.startTime, tc.endDate, tc.endTime, tc.sameDay)
			if got != 1 {
				t.Fatalf("expected fallback of 1 hour, got %d", got)
			}
		})
	}
}

func TestResolveDurationHoursRoundsUp(t *testing.T) {
	// 90 minutes must bill as 2 hours, not 1.
	got := ResolveDurationHours("2026-06-01", "10:00", "2026-06-01", "11:30", false)
	if got != 2 {
		t.Fatalf("expected 2 hours for a 90-minute span, got %d", got)
	}

	got = ResolveDurationHours("2026-06-01", "10:00", "2026-06-01", "12:00", false)
	if got != 2 {
		t.Fatalf("expected 2 hours for a 120-minute span, got %d", got)
	}
}

func TestResolveDurationHoursMultiDay(t *testing.T) {
	got := ResolveDurationHours("2026-06-01", "18:00", "2026-06-02", "02:00", false)
	if got != 8 {
		t.Fatalf("expected 8 hours overnight, got %d", got)
	}

	// Missing end date falls back to the start date.
	got = ResolveDurationHours("2026-06-01", "10:00", "", "13:00", false)
	if got != 3 {
		t.Fatalf("expected 3 hours with empty end date, got %d", got)
	}
}

func TestFixedPartnerIgnoresDuration(t *testing.T) {
	partner := PartnerAllocation{Partner: 1, PriceType: PriceTypeFixed, Rate: 300, Hours: 12}
	for _, hours := range []int{1, 4, 24} {
		if got := SumPartnerCosts([]PartnerAllocation{partner}, hours); got != 300 {
			t.Fatalf("fixed partner at duration %d: expected 300, got %v", hours, got)
		}
	}
}

func TestFixedPartnerStoredCostWins(t *testing.T) {
	stored := Number(250)
	partner := PartnerAllocation{Partner: 1, PriceType: PriceTypeFixed, Rate: 300, Cost: &stored}
	if got := SumPartnerCosts([]PartnerAllocation{partner}, 4); got != 250 {
		t.Fatalf("expected stored cost 250 to override rate, got %v", got)
	}
}

func TestHourlyPartnerDefaultsToEventDuration(t *testing.T) {
	partner := PartnerAllocation{Partner: 1, PriceType: PriceTypeHourly, Rate: 50}
	if got := SumPartnerCosts([]PartnerAllocation{partner}, 3); got != 150 {
		t.Fatalf("expected 150 for rate 50 over 3 default hours, got %v", got)
	}

	partner.Hours = 5
	if got := SumPartnerCosts([]PartnerAllocation{partner}, 3); got != 250 {
		t.Fatalf("expected explicit hours to win, got %v", got)
	}
}

func TestSumPartnerCostsDoesNotMutateInput(t *testing.T) {
	partners := []PartnerAllocation{
		{Partner: 1, PriceType: PriceTypeHourly, Rate: 50},
		{Partner: 2, PriceType: PriceTypeFixed, Rate: 200},
	}
	snapshot := make([]PartnerAllocation, len(partners))
	copy(snapshot, partners)

	SumPartnerCosts(partners, 3)
	PartnerCostLines(partners, 3)

	if !reflect.DeepEqual(partners, snapshot) {
		t.Fatalf("input collection mutated: %+v", partners)
	}
}

func TestSupplyCostAndChargeSeparation(t *testing.T) {
	supplies := []SupplyAllocation{
		{Supply: 1, QuantityRequested: 2, CostPerUnit: 10, ChargePerUnit: 15, PricingType: SupplyPricingChargeable},
		{Supply: 2, QuantityRequested: 3, CostPerUnit: 5, ChargePerUnit: 8, PricingType: SupplyPricingIncluded},
	}

	cost := SumSupplyCostToVenue(supplies)
	if cost != 35 {
		t.Fatalf("expected venue cost 35, got %v", cost)
	}

	charge := SumSupplyChargeToClient(supplies)
	if charge != 30 {
		t.Fatalf("expected client charge 30 (included line excluded), got %v", charge)
	}

	if margin := charge - cost; margin != -5 {
		t.Fatalf("expected margin -5, got %v", margin)
	}
}

func TestOptionalSupplyNotCharged(t *testing.T) {
	supplies := []SupplyAllocation{
		{Supply: 1, QuantityRequested: 4, CostPerUnit: 2, ChargePerUnit: 6, PricingType: SupplyPricingOptional},
	}
	if got := SumSupplyChargeToClient(supplies); got != 0 {
		t.Fatalf("optional supply must not bill the client, got %v", got)
	}
	if got := SumSupplyCostToVenue(supplies); got != 8 {
		t.Fatalf("operator still pays for optional supplies, got %v", got)
	}
}

func TestDiscountClampedAtZero(t *testing.T) {
	dt := ApplyDiscountAndTax(100, DiscountTypeFixed, 150, 19)
	if dt.SubtotalAfterDiscount != 0 {
		t.Fatalf("expected clamped subtotal 0, got %v", dt.SubtotalAfterDiscount)
	}
	if dt.TaxAmount != 0 || dt.Total != 0 {
		t.Fatalf("expected zero tax and total after clamp, got %+v", dt)
	}
}

func TestPercentageDiscountBeforeTax(t *testing.T) {
	dt := ApplyDiscountAndTax(200, DiscountTypePercentage, 10, 19)
	if dt.DiscountAmount != 20 {
		t.Fatalf("expected discount 20, got %v", dt.DiscountAmount)
	}
	if dt.SubtotalAfterDiscount != 180 {
		t.Fatalf("expected discounted subtotal 180, got %v", dt.SubtotalAfterDiscount)
	}
	if dt.TaxAmount != 34.2 {
		t.Fatalf("expected tax 34.2, got %v", dt.TaxAmount)
	}
	if dt.Total != 214.2 {
		t.Fatalf("expected total 214.2, got %v", dt.Total)
	}
}

func TestUnsetDiscountTypeMeansFixed(t *testing.T) {
	dt := ApplyDiscountAndTax(200, "", 50, 0)
	if dt.DiscountAmount != 50 {
		t.Fatalf("unset discount type must behave as fixed, got %v", dt.DiscountAmount)
	}
}

func TestComputeEndToEnd(t *testing.T) {
	draft := EventDraft{
		StartDate:    "2026-06-01",
		StartTime:    "14:00",
		EndTime:      "18:00",
		SameDayEvent: true,
		Partners: []PartnerAllocation{
			{Partner: 7, Service: "Catering", PriceType: PriceTypeHourly, Rate: 50, Hours: 4},
		},
		Supplies: []SupplyAllocation{
			{Supply: 3, QuantityRequested: 10, CostPerUnit: 3, ChargePerUnit: 5, PricingType: SupplyPricingChargeable},
		},
		Pricing: Terms{BasePrice: 1000, Discount: 0, DiscountType: DiscountTypeFixed, TaxRate: 19},
	}

	q := Compute(draft)

	if q.DurationHours != 4 {
		t.Fatalf("expected 4 hours, got %d", q.DurationHours)
	}
	if q.PartnersCost != 200 {
		t.Fatalf("expected partners cost 200, got %v", q.PartnersCost)
	}
	if q.SuppliesChargeToClient != 50 {
		t.Fatalf("expected supplies charge 50, got %v", q.SuppliesChargeToClient)
	}
	if q.SuppliesCostToVenue != 30 {
		t.Fatalf("expected supplies venue cost 30, got %v", q.SuppliesCostToVenue)
	}
	if q.SuppliesMargin != 20 {
		t.Fatalf("expected supplies margin 20, got %v", q.SuppliesMargin)
	}
	if q.Subtotal != 1250 {
		t.Fatalf("expected subtotal 1250, got %v", q.Subtotal)
	}
	if q.TaxAmount != 237.5 {
		t.Fatalf("expected tax 237.5, got %v", q.TaxAmount)
	}
	if q.Total != 1487.5 {
		t.Fatalf("expected total 1487.5, got %v", q.Total)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	stored := Number(400)
	draft := EventDraft{
		StartDate: "2026-06-01",
		StartTime: "09:30",
		EndDate:   "2026-06-01",
		EndTime:   "16:45",
		Partners: []PartnerAllocation{
			{Partner: 1, Service: "Photo", PriceType: PriceTypeHourly, Rate: 80},
			{Partner: 2, Service: "Security", PriceType: PriceTypeFixed, Rate: 500, Cost: &stored},
		},
		Supplies: []SupplyAllocation{
			{Supply: 1, QuantityRequested: 20, CostPerUnit: 1.5, ChargePerUnit: 2.5, PricingType: SupplyPricingChargeable},
			{Supply: 2, QuantityRequested: 5, CostPerUnit: 4, PricingType: SupplyPricingIncluded},
		},
		Pricing: Terms{BasePrice: 750, Discount: 12.5, DiscountType: DiscountTypePercentage, TaxRate: 21},
	}

	first := Compute(draft)
	second := Compute(draft)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeToleratesEmptyDraft(t *testing.T) {
	q := Compute(EventDraft{})
	if q.DurationHours != 1 {
		t.Fatalf("empty draft must fall back to 1 hour, got %d", q.DurationHours)
	}
	if q.Total != 0 || q.Subtotal != 0 {
		t.Fatalf("empty draft must produce zero totals, got %+v", q)
	}
}

func TestNumberCoercion(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	raw := []byte(`{"a": 12.5, "b": "37", "c": "", "d": null, "e": "oops"}`)
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != 12.5 || payload.B != 37 {
		t.Fatalf("numeric values mangled: %+v", payload)
	}
	if payload.C != 0 || payload.D != 0 || payload.E != 0 {
		t.Fatalf("garbage must coerce to zero: %+v", payload)
	}
}

func TestComputeWithCoercedGarbage(t *testing.T) {
	var draft EventDraft
	raw := []byte(`{
		"startDate": "2026-06-01",
		"startTime": "10:0",
		"endTime": "12:00",
		"sameDayEvent": true,
		"partners": [{"partner": 1, "priceType": "hourly", "rate": "abc"}],
		"pricing": {"basePrice": "100", "discount": "", "taxRate": null}
	}`)
	if err := json.Unmarshal(raw, &draft); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	q := Compute(draft)
	if q.DurationHours != 1 {
		t.Fatalf("malformed start time must fall back to 1 hour, got %d", q.DurationHours)
	}
	if q.PartnersCost != 0 {
		t.Fatalf("garbage rate must cost zero, got %v", q.PartnersCost)
	}
	if q.Total != 100 {
		t.Fatalf("expected total 100 from base price alone, got %v", q.Total)
	}
}
