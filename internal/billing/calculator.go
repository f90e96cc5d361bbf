// Package billing implements the silver billing formulas shared by the
// wholesale and regular sale flows, plus the metal purity mixing
// calculators. Everything in this package is a pure function over
// decimal values: no I/O, no shared state, safe to recompute on every
// input change.
package billing

import (
	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)

	// DefaultTouch is the fineness factor pre-filled on new line items.
	DefaultTouch = decimal.RequireFromString("13.00")
	// DefaultLaborRatePerKg is the labor rate pre-filled on new line items.
	DefaultLaborRatePerKg = decimal.NewFromInt(500)
	// DefaultGSTPercent is the default CGST/SGST percentage for wholesale bills.
	DefaultGSTPercent = decimal.RequireFromString("1.5")
)

// LineItem is one row of a sale draft. Weights are grams, rates are
// currency. Optional fields left at their zero value are treated as zero
// in the formulas; validation (validate.go) decides which fields are
// mandatory before this package is invoked.
type LineItem struct {
	Description    string
	Pieces         int
	GrossWeight    decimal.Decimal
	StoneWeight    decimal.Decimal
	Wastage        decimal.Decimal
	Touch          decimal.Decimal
	LaborRatePerKg decimal.Decimal
}

// DefaultLineItem returns a line item carrying the form defaults.
func DefaultLineItem() LineItem {
	return LineItem{
		Pieces:         1,
		Touch:          DefaultTouch,
		LaborRatePerKg: DefaultLaborRatePerKg,
	}
}

// NetWeight is grossWeight - stoneWeight. Never stored independently:
// always derived from the two inputs so the invariant cannot drift.
func NetWeight(gross, stone decimal.Decimal) decimal.Decimal {
	return gross.Sub(stone)
}

// NetWeight returns the item's derived net weight.
func (it LineItem) NetWeight() decimal.Decimal {
	return NetWeight(it.GrossWeight, it.StoneWeight)
}

// GSTConfig carries the billing-type GST policy. Regular bills run with
// Applicable=false; wholesale bills toggle it with configurable percents.
type GSTConfig struct {
	Applicable  bool
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
}

// WholesaleGST returns the default wholesale GST configuration
// (CGST 1.5% + SGST 1.5%).
func WholesaleGST() GSTConfig {
	return GSTConfig{
		Applicable:  true,
		CGSTPercent: DefaultGSTPercent,
		SGSTPercent: DefaultGSTPercent,
	}
}

// Payment is the two-part settlement against a sale: cash (or
// card/upi/...) plus silver in kind, valued at the day's rate.
type Payment struct {
	PaidAmount decimal.Decimal // currency
	PaidSilver decimal.Decimal // grams
}

// ItemComputation is the per-item output of the billing formulas.
type ItemComputation struct {
	NetWeight    decimal.Decimal
	SilverWeight decimal.Decimal
	LaborCharge  decimal.Decimal
	Amount       decimal.Decimal
}

// ComputeItem applies the three item formulas:
//
//	silverWeight = (wastage + touch) * netWeight / 100
//	laborCharge  = grossWeight * laborRatePerKg / 1000
//	amount       = silverWeight * silverRate + laborCharge
//
// Values are kept at full precision; rounding happens only when
// formatting for display.
func ComputeItem(item LineItem, silverRate decimal.Decimal) ItemComputation {
	net := item.NetWeight()
	silverWeight := item.Wastage.Add(item.Touch).Mul(net).Div(hundred)
	laborCharge := item.GrossWeight.Mul(item.LaborRatePerKg).Div(thousand)

	return ItemComputation{
		NetWeight:    net,
		SilverWeight: silverWeight,
		LaborCharge:  laborCharge,
		Amount:       silverWeight.Mul(silverRate).Add(laborCharge),
	}
}

// SaleComputation aggregates the per-item results, the optional GST
// lines and the payment reconciliation. BalanceAmount keeps its sign:
// negative means the customer overpaid and holds credit.
type SaleComputation struct {
	Items []ItemComputation

	TotalNetWeight    decimal.Decimal
	TotalWastage      decimal.Decimal
	TotalSilverWeight decimal.Decimal
	TotalLabor        decimal.Decimal
	Subtotal          decimal.Decimal

	CGST        decimal.Decimal
	SGST        decimal.Decimal
	TotalAmount decimal.Decimal

	PaidSilverValue decimal.Decimal
	EffectivePaid   decimal.Decimal
	BalanceAmount   decimal.Decimal
}

// ComputeTotals runs the full sale computation. Per-item values are
// accumulated unrounded and the aggregate is rounded once at the
// formatting boundary, matching how the billing forms sum raw values
// before calling toFixed.
func ComputeTotals(items []LineItem, silverRate decimal.Decimal, gst GSTConfig, payment Payment) SaleComputation {
	comp := SaleComputation{Items: make([]ItemComputation, 0, len(items))}

	for _, item := range items {
		ic := ComputeItem(item, silverRate)
		comp.Items = append(comp.Items, ic)

		comp.TotalNetWeight = comp.TotalNetWeight.Add(ic.NetWeight)
		comp.TotalWastage = comp.TotalWastage.Add(item.Wastage)
		comp.TotalSilverWeight = comp.TotalSilverWeight.Add(ic.SilverWeight)
		comp.TotalLabor = comp.TotalLabor.Add(ic.LaborCharge)
		comp.Subtotal = comp.Subtotal.Add(ic.Amount)
	}

	if gst.Applicable {
		comp.CGST = comp.Subtotal.Mul(gst.CGSTPercent).Div(hundred)
		comp.SGST = comp.Subtotal.Mul(gst.SGSTPercent).Div(hundred)
	}
	comp.TotalAmount = comp.Subtotal.Add(comp.CGST).Add(comp.SGST)

	comp.PaidSilverValue = payment.PaidSilver.Mul(silverRate)
	comp.EffectivePaid = payment.PaidAmount.Add(comp.PaidSilverValue)
	comp.BalanceAmount = comp.TotalAmount.Sub(comp.EffectivePaid)

	return comp
}

// FormattedItem is the presentation form of one line item result:
// weights at 3 decimal places, currency at 2.
type FormattedItem struct {
	NetWeight    string `json:"net_weight"`
	SilverWeight string `json:"silver_weight"`
	LaborCharge  string `json:"labor_charge"`
	Amount       string `json:"amount"`
}

// FormattedComputation is the presentation form of a sale computation.
// Downstream report generators (Excel export, frontend PDF) depend on
// these field names and precisions staying stable.
type FormattedComputation struct {
	Items []FormattedItem `json:"items"`

	TotalNetWeight    string `json:"total_net_weight"`
	TotalWastage      string `json:"total_wastage"`
	TotalSilverWeight string `json:"total_silver_weight"`
	TotalLabor        string `json:"total_labor"`
	Subtotal          string `json:"subtotal"`

	CGST        string `json:"cgst"`
	SGST        string `json:"sgst"`
	TotalAmount string `json:"total_amount"`

	PaidSilverValue string `json:"paid_silver_value"`
	EffectivePaid   string `json:"effective_paid"`
	BalanceAmount   string `json:"balance_amount"`
}

// Formatted renders the computation with fixed decimals (3dp weights,
// 2dp currency). This is the only place rounding happens.
func (c SaleComputation) Formatted() FormattedComputation {
	out := FormattedComputation{
		Items:             make([]FormattedItem, 0, len(c.Items)),
		TotalNetWeight:    c.TotalNetWeight.StringFixed(3),
		TotalWastage:      c.TotalWastage.StringFixed(3),
		TotalSilverWeight: c.TotalSilverWeight.StringFixed(3),
		TotalLabor:        c.TotalLabor.StringFixed(2),
		Subtotal:          c.Subtotal.StringFixed(2),
		CGST:              c.CGST.StringFixed(2),
		SGST:              c.SGST.StringFixed(2),
		TotalAmount:       c.TotalAmount.StringFixed(2),
		PaidSilverValue:   c.PaidSilverValue.StringFixed(2),
		EffectivePaid:     c.EffectivePaid.StringFixed(2),
		BalanceAmount:     c.BalanceAmount.StringFixed(2),
	}

	for _, ic := range c.Items {
		out.Items = append(out.Items, FormattedItem{
			NetWeight:    ic.NetWeight.StringFixed(3),
			SilverWeight: ic.SilverWeight.StringFixed(3),
			LaborCharge:  ic.LaborCharge.StringFixed(2),
			Amount:       ic.Amount.StringFixed(2),
		})
	}

	return out
}
