package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetWeight(t *testing.T) {
	tests := []struct {
		name  string
		gross string
		stone string
		want  string
	}{
		{"plain", "100", "10", "90"},
		{"no stone", "52.340", "0", "52.340"},
		{"fractional", "10.125", "0.125", "10"},
		{"blank treated as zero", "15.5", "0", "15.5"},
		{"stone heavier flows through negative", "5", "7", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetWeight(dec(tt.gross), dec(tt.stone))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("NetWeight(%s, %s) = %s, want %s", tt.gross, tt.stone, got, tt.want)
			}
		})
	}
}

func TestComputeItem(t *testing.T) {
	tests := []struct {
		name       string
		item       LineItem
		rate       string
		wantNet    string
		wantSilver string
		wantLabor  string
		wantAmount string
	}{
		{
			name: "reference scenario",
			item: LineItem{
				GrossWeight:    dec("100"),
				StoneWeight:    dec("10"),
				Wastage:        dec("2"),
				Touch:          dec("13"),
				LaborRatePerKg: dec("500"),
			},
			rate:       "75",
			wantNet:    "90",
			wantSilver: "13.5",
			wantLabor:  "50",
			wantAmount: "1062.5",
		},
		{
			name: "silver weight formula",
			item: LineItem{
				GrossWeight: dec("10"),
				Touch:       dec("13"),
			},
			rate:       "0",
			wantNet:    "10",
			wantSilver: "1.3",
			wantLabor:  "0",
			wantAmount: "0",
		},
		{
			name: "labor formula",
			item: LineItem{
				GrossWeight:    dec("100"),
				LaborRatePerKg: dec("500"),
			},
			rate:       "0",
			wantNet:    "100",
			wantSilver: "0",
			wantLabor:  "50",
			wantAmount: "50",
		},
		{
			name: "zero value optional fields",
			item: LineItem{
				GrossWeight: dec("25"),
			},
			rate:       "80",
			wantNet:    "25",
			wantSilver: "0",
			wantLabor:  "0",
			wantAmount: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeItem(tt.item, dec(tt.rate))
			if !got.NetWeight.Equal(dec(tt.wantNet)) {
				t.Errorf("NetWeight = %s, want %s", got.NetWeight, tt.wantNet)
			}
			if !got.SilverWeight.Equal(dec(tt.wantSilver)) {
				t.Errorf("SilverWeight = %s, want %s", got.SilverWeight, tt.wantSilver)
			}
			if !got.LaborCharge.Equal(dec(tt.wantLabor)) {
				t.Errorf("LaborCharge = %s, want %s", got.LaborCharge, tt.wantLabor)
			}
			if !got.Amount.Equal(dec(tt.wantAmount)) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.wantAmount)
			}
		})
	}
}

func testItems() []LineItem {
	return []LineItem{
		{
			Description:    "silver chain",
			Pieces:         1,
			GrossWeight:    dec("100"),
			StoneWeight:    dec("10"),
			Wastage:        dec("2"),
			Touch:          dec("13"),
			LaborRatePerKg: dec("500"),
		},
		{
			Description:    "anklet pair",
			Pieces:         2,
			GrossWeight:    dec("40.500"),
			StoneWeight:    dec("0.500"),
			Wastage:        dec("1.5"),
			Touch:          dec("13"),
			LaborRatePerKg: dec("600"),
		},
	}
}

func TestComputeTotalsAggregates(t *testing.T) {
	rate := dec("75")
	comp := ComputeTotals(testItems(), rate, GSTConfig{}, Payment{})

	// item 1: net 90, silver 13.5, labor 50, amount 1062.5
	// item 2: net 40, silver (1.5+13)*40/100 = 5.8, labor 40.5*600/1000 = 24.3,
	//         amount 5.8*75 + 24.3 = 459.3
	if !comp.TotalNetWeight.Equal(dec("130")) {
		t.Errorf("TotalNetWeight = %s, want 130", comp.TotalNetWeight)
	}
	if !comp.TotalWastage.Equal(dec("3.5")) {
		t.Errorf("TotalWastage = %s, want 3.5", comp.TotalWastage)
	}
	if !comp.TotalSilverWeight.Equal(dec("19.3")) {
		t.Errorf("TotalSilverWeight = %s, want 19.3", comp.TotalSilverWeight)
	}
	if !comp.TotalLabor.Equal(dec("74.3")) {
		t.Errorf("TotalLabor = %s, want 74.3", comp.TotalLabor)
	}
	if !comp.Subtotal.Equal(dec("1521.8")) {
		t.Errorf("Subtotal = %s, want 1521.8", comp.Subtotal)
	}
	if !comp.TotalAmount.Equal(comp.Subtotal) {
		t.Errorf("TotalAmount = %s, want subtotal %s when GST off", comp.TotalAmount, comp.Subtotal)
	}
}

func TestComputeTotalsGSTToggle(t *testing.T) {
	rate := dec("75")
	items := testItems()

	off := ComputeTotals(items, rate, GSTConfig{Applicable: false, CGSTPercent: dec("1.5"), SGSTPercent: dec("1.5")}, Payment{})
	if !off.CGST.IsZero() || !off.SGST.IsZero() {
		t.Errorf("GST off: cgst=%s sgst=%s, want both zero", off.CGST, off.SGST)
	}
	if !off.TotalAmount.Equal(off.Subtotal) {
		t.Errorf("GST off: total %s != subtotal %s", off.TotalAmount, off.Subtotal)
	}

	on := ComputeTotals(items, rate, WholesaleGST(), Payment{})
	wantGST := on.Subtotal.Mul(dec("1.5")).Div(dec("100"))
	if !on.CGST.Equal(wantGST) {
		t.Errorf("CGST = %s, want %s", on.CGST, wantGST)
	}
	if !on.SGST.Equal(wantGST) {
		t.Errorf("SGST = %s, want %s", on.SGST, wantGST)
	}
	if !on.TotalAmount.Equal(on.Subtotal.Add(on.CGST).Add(on.SGST)) {
		t.Errorf("TotalAmount = %s, want subtotal+cgst+sgst", on.TotalAmount)
	}
	if on.TotalAmount.LessThan(on.Subtotal) {
		t.Errorf("TotalAmount %s below subtotal %s with GST applicable", on.TotalAmount, on.Subtotal)
	}
}

func TestComputeTotalsPaymentReconciliation(t *testing.T) {
	rate := dec("75")
	items := testItems() // subtotal 1521.8, no GST

	tests := []struct {
		name        string
		payment     Payment
		wantBalance string
	}{
		{"unpaid", Payment{}, "1521.8"},
		{"cash only", Payment{PaidAmount: dec("1000")}, "521.8"},
		{"silver in kind", Payment{PaidSilver: dec("10")}, "771.8"}, // 10g * 75 = 750
		{"mixed", Payment{PaidAmount: dec("500"), PaidSilver: dec("10")}, "271.8"},
		{"overpaid keeps negative sign", Payment{PaidAmount: dec("2000")}, "-478.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := ComputeTotals(items, rate, GSTConfig{}, tt.payment)
			if !comp.BalanceAmount.Equal(dec(tt.wantBalance)) {
				t.Errorf("BalanceAmount = %s, want %s", comp.BalanceAmount, tt.wantBalance)
			}
			wantEffective := tt.payment.PaidAmount.Add(tt.payment.PaidSilver.Mul(rate))
			if !comp.EffectivePaid.Equal(wantEffective) {
				t.Errorf("EffectivePaid = %s, want %s", comp.EffectivePaid, wantEffective)
			}
		})
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	rate := dec("75")
	items := testItems()
	payment := Payment{PaidAmount: dec("300"), PaidSilver: dec("2.5")}

	first := ComputeTotals(items, rate, WholesaleGST(), payment)
	second := ComputeTotals(items, rate, WholesaleGST(), payment)

	if !first.Subtotal.Equal(second.Subtotal) ||
		!first.TotalAmount.Equal(second.TotalAmount) ||
		!first.BalanceAmount.Equal(second.BalanceAmount) {
		t.Errorf("recomputation drifted: first=%+v second=%+v", first, second)
	}
}

func TestComputeTotalsSumsUnroundedValues(t *testing.T) {
	// Two items whose silver weights round to 3dp individually but
	// whose raw sum differs from the sum of rounded values.
	items := []LineItem{
		{Description: "a", GrossWeight: dec("1"), Wastage: dec("0"), Touch: dec("3.3335"), LaborRatePerKg: dec("0")},
		{Description: "b", GrossWeight: dec("1"), Wastage: dec("0"), Touch: dec("3.3335"), LaborRatePerKg: dec("0")},
	}
	comp := ComputeTotals(items, dec("100"), GSTConfig{}, Payment{})

	// per item silver = 3.3335 * 1 / 100 = 0.033335; raw sum 0.06667
	if !comp.TotalSilverWeight.Equal(dec("0.06667")) {
		t.Errorf("TotalSilverWeight = %s, want unrounded 0.06667", comp.TotalSilverWeight)
	}
	// formatted aggregate rounds once: 0.067, not 0.033+0.033=0.066
	if got := comp.Formatted().TotalSilverWeight; got != "0.067" {
		t.Errorf("formatted TotalSilverWeight = %s, want 0.067", got)
	}
}

func TestFormattedPrecision(t *testing.T) {
	comp := ComputeTotals(testItems(), dec("75"), WholesaleGST(), Payment{PaidAmount: dec("100")})
	f := comp.Formatted()

	if f.TotalNetWeight != "130.000" {
		t.Errorf("TotalNetWeight = %q, want 130.000", f.TotalNetWeight)
	}
	if f.TotalSilverWeight != "19.300" {
		t.Errorf("TotalSilverWeight = %q, want 19.300", f.TotalSilverWeight)
	}
	if f.Subtotal != "1521.80" {
		t.Errorf("Subtotal = %q, want 1521.80", f.Subtotal)
	}
	if f.CGST != "22.83" { // 1521.8 * 1.5% = 22.827 -> 22.83
		t.Errorf("CGST = %q, want 22.83", f.CGST)
	}
	if len(f.Items) != 2 {
		t.Fatalf("Items length = %d, want 2", len(f.Items))
	}
	if f.Items[0].SilverWeight != "13.500" || f.Items[0].Amount != "1062.50" {
		t.Errorf("item 0 = %+v", f.Items[0])
	}
}
