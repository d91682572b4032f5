// Package pricing computes event quotations: duration, partner costs, supply
// costs and margins, discount and tax, and the final payable total. It is a
// pure package; callers pass a draft snapshot and receive a quote snapshot.
// Drafts arrive from a form that is still being typed into, so every input is
// tolerated: unparseable dates fall back to a one-hour duration and
// non-numeric amounts coerce to zero. The package never returns an error.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Number is a tolerant monetary or quantity value. It decodes JSON numbers,
// numeric strings, null and garbage; anything unparseable becomes zero.
type Number float64

// UnmarshalJSON accepts numbers and quoted numbers, coercing failures to 0.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Float returns the value as a plain float64, sanitising NaN and Inf to 0.
func (n Number) Float() float64 {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// PriceType selects how a partner allocation is billed.
type PriceType string

const (
	PriceTypeHourly PriceType = "hourly"
	PriceTypeFixed  PriceType = "fixed"
)

// SupplyPricing selects how a supply line is charged to the client.
type SupplyPricing string

const (
	SupplyPricingIncluded   SupplyPricing = "included"
	SupplyPricingChargeable SupplyPricing = "chargeable"
	SupplyPricingOptional   SupplyPricing = "optional"
)

// DiscountType selects how the draft discount value is interpreted.
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

// PartnerAllocation is one third-party service provider on the draft.
// Hours is only meaningful for hourly partners; when absent or zero the
// event-level duration applies. Cost, when stored, is authoritative for
// fixed-price partners.
type PartnerAllocation struct {
	Partner   int64     `json:"partner"`
	Service   string    `json:"service"`
	PriceType PriceType `json:"priceType"`
	Rate      Number    `json:"rate"`
	Hours     Number    `json:"hours,omitempty"`
	Cost      *Number   `json:"cost,omitempty"`
}

// SupplyAllocation is one consumable line on the draft. CostPerUnit is what
// the operator pays; ChargePerUnit is what the client is billed. Only
// chargeable lines contribute to the client bill.
type SupplyAllocation struct {
	Supply            int64         `json:"supply"`
	QuantityRequested Number        `json:"quantityRequested"`
	CostPerUnit       Number        `json:"costPerUnit"`
	ChargePerUnit     Number        `json:"chargePerUnit"`
	PricingType       SupplyPricing `json:"pricingType"`
}

// Terms holds the draft-level pricing inputs. TotalAmount is the total the
// form last displayed; it is accepted so submissions round-trip but the
// calculation never reads it.
type Terms struct {
	BasePrice    Number       `json:"basePrice"`
	Discount     Number       `json:"discount"`
	DiscountType DiscountType `json:"discountType"`
	TaxRate      Number       `json:"taxRate"`
	TotalAmount  Number       `json:"totalAmount,omitempty"`
}

// EventDraft is the in-progress event being edited. Dates are YYYY-MM-DD,
// times are HH:MM, both naive local. EndDate is ignored when SameDayEvent.
type EventDraft struct {
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate,omitempty"`
	StartTime    string              `json:"startTime"`
	EndTime      string              `json:"endTime"`
	SameDayEvent bool                `json:"sameDayEvent"`
	Partners     []PartnerAllocation `json:"partners,omitempty"`
	Supplies     []SupplyAllocation  `json:"supplies,omitempty"`
	Pricing      Terms               `json:"pricing"`
}
