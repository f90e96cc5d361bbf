package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

var epsilon = dec("0.000001")

func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(epsilon)
}

func TestMixToTargetPurity(t *testing.T) {
	// 5000g pure + 5000g raw at 43% diluted to 42%:
	// pureInRaw=2150, totalPure=7150, initial=10000, currentPurity=71.5,
	// finalMass=7150/0.42, copper=finalMass-10000
	res, err := MixToTargetPurity(dec("5000"), dec("5000"), dec("43"), dec("42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TotalPureSilver.Equal(dec("7150")) {
		t.Errorf("TotalPureSilver = %s, want 7150", res.TotalPureSilver)
	}
	if !res.InitialWeight.Equal(dec("10000")) {
		t.Errorf("InitialWeight = %s, want 10000", res.InitialWeight)
	}
	if !res.CurrentPurity.Equal(dec("71.5")) {
		t.Errorf("CurrentPurity = %s, want 71.5", res.CurrentPurity)
	}

	wantFinal := dec("7150").Div(dec("0.42"))
	if !closeTo(res.FinalTotalMass, wantFinal) {
		t.Errorf("FinalTotalMass = %s, want %s", res.FinalTotalMass, wantFinal)
	}
	if !closeTo(res.CopperToAdd, wantFinal.Sub(dec("10000"))) {
		t.Errorf("CopperToAdd = %s, want %s", res.CopperToAdd, wantFinal.Sub(dec("10000")))
	}

	// resulting purity must land on target
	gotPurity := res.TotalPureSilver.Div(res.FinalTotalMass).Mul(dec("100"))
	if !closeTo(gotPurity, dec("42")) {
		t.Errorf("resulting purity = %s, want 42", gotPurity)
	}
}

func TestMixToTargetPurityReducesToDilution(t *testing.T) {
	// rawSilver = 0 must reduce exactly to DilutePureSilver
	mix, err := MixToTargetPurity(dec("500"), dec("0"), dec("0"), dec("50"))
	if err != nil {
		t.Fatalf("mix error: %v", err)
	}
	dil, err := DilutePureSilver(dec("500"), dec("50"))
	if err != nil {
		t.Fatalf("dilute error: %v", err)
	}

	if !mix.FinalTotalMass.Equal(dil.FinalTotalMass) {
		t.Errorf("FinalTotalMass: mix %s != dilute %s", mix.FinalTotalMass, dil.FinalTotalMass)
	}
	if !mix.CopperToAdd.Equal(dil.CopperToAdd) {
		t.Errorf("CopperToAdd: mix %s != dilute %s", mix.CopperToAdd, dil.CopperToAdd)
	}
}

func TestMixToTargetPurityConstraint(t *testing.T) {
	// blend sits at 71.5%; asking for 80% needs removal, not addition
	_, err := MixToTargetPurity(dec("5000"), dec("5000"), dec("43"), dec("80"))
	var cerr *ConstraintError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConstraintError, got %v", err)
	}
	if !cerr.Amount.IsNegative() {
		t.Errorf("constraint Amount = %s, want negative", cerr.Amount)
	}
}

func TestMixToTargetPurityInvalidInput(t *testing.T) {
	tests := []struct {
		name                          string
		pure, raw, rawPurity, target string
	}{
		{"zero target", "500", "100", "40", "0"},
		{"target 100", "500", "100", "40", "100"},
		{"target above 100", "500", "100", "40", "110"},
		{"zero total mass", "0", "0", "0", "50"},
		{"negative pure", "-1", "100", "40", "50"},
		{"raw purity above 100", "500", "100", "120", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MixToTargetPurity(dec(tt.pure), dec(tt.raw), dec(tt.rawPurity), dec(tt.target))
			var ierr *InvalidInputError
			if !errors.As(err, &ierr) {
				t.Errorf("want InvalidInputError, got %v", err)
			}
		})
	}
}

func TestDilutePureSilverRoundTrip(t *testing.T) {
	res, err := DilutePureSilver(dec("500"), dec("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.FinalTotalMass.Equal(dec("1000")) {
		t.Errorf("FinalTotalMass = %s, want 1000", res.FinalTotalMass)
	}
	if !res.CopperToAdd.Equal(dec("500")) {
		t.Errorf("CopperToAdd = %s, want 500", res.CopperToAdd)
	}

	// round trip: pure / finalMass * 100 == target
	back := dec("500").Div(res.FinalTotalMass).Mul(dec("100"))
	if !closeTo(back, dec("50")) {
		t.Errorf("round-trip purity = %s, want 50", back)
	}
}

func TestDilutePureSilverDegenerate(t *testing.T) {
	for _, target := range []string{"0", "-5", "100", "101"} {
		if _, err := DilutePureSilver(dec("500"), dec(target)); err == nil {
			t.Errorf("target %s: want error, got nil", target)
		} else {
			var ierr *InvalidInputError
			if !errors.As(err, &ierr) {
				t.Errorf("target %s: want InvalidInputError, got %v", target, err)
			}
		}
	}
}

func TestStandardMixSplitsFillerEvenly(t *testing.T) {
	for _, target := range StandardMixPurities {
		res, err := StandardMix(dec("500"), target)
		if err != nil {
			t.Fatalf("target %s: unexpected error: %v", target, err)
		}
		if !res.JastToAdd.Equal(res.CopperToAdd) {
			t.Errorf("target %s: jast %s != copper %s", target, res.JastToAdd, res.CopperToAdd)
		}
		if !res.JastToAdd.Add(res.CopperToAdd).Equal(res.AdditionNeeded) {
			t.Errorf("target %s: halves %s+%s do not sum to %s",
				target, res.JastToAdd, res.CopperToAdd, res.AdditionNeeded)
		}
		if !res.FinalMixMass.Equal(dec("500").Add(res.AdditionNeeded)) {
			t.Errorf("target %s: final mass %s != initial + addition", target, res.FinalMixMass)
		}
	}
}

func TestStandardMixFiftyPercent(t *testing.T) {
	res, err := StandardMix(dec("500"), dec("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.FinalMixMass.Equal(dec("1000")) || !res.AdditionNeeded.Equal(dec("500")) {
		t.Errorf("got final=%s addition=%s, want 1000/500", res.FinalMixMass, res.AdditionNeeded)
	}
	if !res.JastToAdd.Equal(dec("250")) || !res.CopperToAdd.Equal(dec("250")) {
		t.Errorf("got jast=%s copper=%s, want 250 each", res.JastToAdd, res.CopperToAdd)
	}
}

func TestBlendBatchesAlreadyAtTarget(t *testing.T) {
	// {1000g@20%, 1000g@40%} at target 30: current purity is exactly 30,
	// so nothing needs to be added.
	res, err := BlendBatches([]Batch{
		{Weight: dec("1000"), Purity: dec("20")},
		{Weight: dec("1000"), Purity: dec("40")},
	}, dec("30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TotalPureSilver.Equal(dec("600")) {
		t.Errorf("TotalPureSilver = %s, want 600", res.TotalPureSilver)
	}
	if !res.TotalWeight.Equal(dec("2000")) {
		t.Errorf("TotalWeight = %s, want 2000", res.TotalWeight)
	}
	if !res.CurrentPurity.Equal(dec("30")) {
		t.Errorf("CurrentPurity = %s, want 30", res.CurrentPurity)
	}
	if !res.PureSilverToAdd.IsZero() {
		t.Errorf("PureSilverToAdd = %s, want 0", res.PureSilverToAdd)
	}
}

func TestBlendBatchesFinalPurityInvariant(t *testing.T) {
	tests := []struct {
		name    string
		batches []Batch
		target  string
	}{
		{
			name: "two batches raised to 52",
			batches: []Batch{
				{Weight: dec("10000"), Purity: dec("28")},
				{Weight: dec("5000"), Purity: dec("35")},
			},
			target: "52",
		},
		{
			name: "three batches raised to 62.5",
			batches: []Batch{
				{Weight: dec("1200"), Purity: dec("40")},
				{Weight: dec("800"), Purity: dec("55.25")},
				{Weight: dec("450.5"), Purity: dec("12")},
			},
			target: "62.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := BlendBatches(tt.batches, dec(tt.target))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.PureSilverToAdd.IsNegative() {
				t.Fatalf("PureSilverToAdd = %s, want >= 0", res.PureSilverToAdd)
			}
			if !closeTo(res.FinalPurity, dec(tt.target)) {
				t.Errorf("FinalPurity = %s, want %s within 1e-6", res.FinalPurity, tt.target)
			}
			// conservation: final pure and weight both grow by exactly x
			if !res.FinalTotalPure.Equal(res.TotalPureSilver.Add(res.PureSilverToAdd)) {
				t.Errorf("FinalTotalPure = %s, want totalPure + x", res.FinalTotalPure)
			}
			if !res.FinalTotalWeight.Equal(res.TotalWeight.Add(res.PureSilverToAdd)) {
				t.Errorf("FinalTotalWeight = %s, want totalWeight + x", res.FinalTotalWeight)
			}
		})
	}
}

func TestBlendBatchesErrors(t *testing.T) {
	two := []Batch{
		{Weight: dec("1000"), Purity: dec("60")},
		{Weight: dec("1000"), Purity: dec("70")},
	}

	t.Run("target 100 rejected", func(t *testing.T) {
		_, err := BlendBatches(two, dec("100"))
		var ierr *InvalidInputError
		if !errors.As(err, &ierr) {
			t.Errorf("want InvalidInputError, got %v", err)
		}
	})

	t.Run("target below current purity", func(t *testing.T) {
		_, err := BlendBatches(two, dec("40"))
		var cerr *ConstraintError
		if !errors.As(err, &cerr) {
			t.Errorf("want ConstraintError, got %v", err)
		}
	})

	t.Run("single batch rejected", func(t *testing.T) {
		_, err := BlendBatches(two[:1], dec("80"))
		var ierr *InvalidInputError
		if !errors.As(err, &ierr) {
			t.Errorf("want InvalidInputError, got %v", err)
		}
	})

	t.Run("zero batch weight rejected", func(t *testing.T) {
		_, err := BlendBatches([]Batch{
			{Weight: dec("0"), Purity: dec("60")},
			{Weight: dec("1000"), Purity: dec("70")},
		}, dec("80"))
		var ierr *InvalidInputError
		if !errors.As(err, &ierr) {
			t.Errorf("want InvalidInputError, got %v", err)
		}
	})
}
