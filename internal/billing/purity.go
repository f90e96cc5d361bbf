package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The four mixing calculators solve the silver-alloy mixing equation for
// one unknown. Masses are grams, purities are percentages (0-100).
// Each returns a typed error instead of letting a zero denominator
// produce Inf/NaN or a physically impossible negative addition pass
// through silently.

// InvalidInputError reports input that makes the mixing equation
// degenerate (zero denominator, empty mass, purity out of range).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// ConstraintError reports a mathematically valid but physically
// impossible solution: the required addition came out negative. Amount
// carries the raw solution so the caller can still display it as a
// warning if it chooses to.
type ConstraintError struct {
	Reason string
	Amount decimal.Decimal
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s (computed %s g)", e.Reason, e.Amount.StringFixed(3))
}

// checkTargetPurity enforces 0 < target < 100 for the dilution
// calculators. target = 0 divides by zero; target = 100 can never be
// reached by adding filler.
func checkTargetPurity(target decimal.Decimal) error {
	if !target.IsPositive() {
		return &InvalidInputError{Field: "target_purity", Reason: "must be greater than zero"}
	}
	if target.GreaterThanOrEqual(hundred) {
		return &InvalidInputError{Field: "target_purity", Reason: "must be below 100"}
	}
	return nil
}

// MixResult is the output of the Type 1 calculator: blend pure silver
// with raw silver of known purity, then add copper to land on the
// target purity.
type MixResult struct {
	TotalPureSilver decimal.Decimal `json:"total_pure_silver"`
	InitialWeight   decimal.Decimal `json:"initial_weight"`
	CurrentPurity   decimal.Decimal `json:"current_purity"`
	FinalTotalMass  decimal.Decimal `json:"final_total_mass"`
	CopperToAdd     decimal.Decimal `json:"copper_to_add"`
}

// MixToTargetPurity computes how much copper to add to a blend of pure
// silver (100%) and raw silver of the given purity so the result sits at
// targetPurity. With rawSilver = 0 it reduces exactly to
// DilutePureSilver.
func MixToTargetPurity(pureSilver, rawSilver, rawPurity, targetPurity decimal.Decimal) (MixResult, error) {
	if pureSilver.IsNegative() {
		return MixResult{}, &InvalidInputError{Field: "pure_silver_weight", Reason: "cannot be negative"}
	}
	if rawSilver.IsNegative() {
		return MixResult{}, &InvalidInputError{Field: "raw_silver_weight", Reason: "cannot be negative"}
	}
	if rawPurity.IsNegative() || rawPurity.GreaterThan(hundred) {
		return MixResult{}, &InvalidInputError{Field: "raw_silver_purity", Reason: "must be between 0 and 100"}
	}
	if err := checkTargetPurity(targetPurity); err != nil {
		return MixResult{}, err
	}

	initialWeight := pureSilver.Add(rawSilver)
	if initialWeight.IsZero() {
		return MixResult{}, &InvalidInputError{Field: "pure_silver_weight", Reason: "total input mass is zero"}
	}

	pureInRaw := rawSilver.Mul(rawPurity).Div(hundred)
	totalPure := pureSilver.Add(pureInRaw)
	currentPurity := totalPure.Div(initialWeight).Mul(hundred)
	finalTotalMass := totalPure.Div(targetPurity.Div(hundred))
	copperToAdd := finalTotalMass.Sub(initialWeight)

	result := MixResult{
		TotalPureSilver: totalPure,
		InitialWeight:   initialWeight,
		CurrentPurity:   currentPurity,
		FinalTotalMass:  finalTotalMass,
		CopperToAdd:     copperToAdd,
	}

	if copperToAdd.IsNegative() {
		return result, &ConstraintError{
			Reason: "cannot dilute to a purity above the current blend purity",
			Amount: copperToAdd,
		}
	}

	return result, nil
}

// DilutionResult is the output of the Type 2 calculator.
type DilutionResult struct {
	FinalTotalMass decimal.Decimal `json:"final_total_mass"`
	CopperToAdd    decimal.Decimal `json:"copper_to_add"`
}

// DilutePureSilver computes the copper/filler needed to bring 100% pure
// silver down to targetPurity.
func DilutePureSilver(pureSilver, targetPurity decimal.Decimal) (DilutionResult, error) {
	if !pureSilver.IsPositive() {
		return DilutionResult{}, &InvalidInputError{Field: "pure_silver_weight", Reason: "must be greater than zero"}
	}
	if err := checkTargetPurity(targetPurity); err != nil {
		return DilutionResult{}, err
	}

	finalTotalMass := pureSilver.Div(targetPurity.Div(hundred))
	return DilutionResult{
		FinalTotalMass: finalTotalMass,
		CopperToAdd:    finalTotalMass.Sub(pureSilver),
	}, nil
}

// StandardMixResult is the output of the Type 3 calculator. The filler
// mass is always split evenly between jast and copper.
type StandardMixResult struct {
	FinalMixMass   decimal.Decimal `json:"final_mix_mass"`
	AdditionNeeded decimal.Decimal `json:"addition_needed"`
	JastToAdd      decimal.Decimal `json:"jast_to_add"`
	CopperToAdd    decimal.Decimal `json:"copper_to_add"`
}

// StandardMixPurities are the purities offered by the standard mix form.
// The formula itself accepts any value between 0 and 100.
var StandardMixPurities = []decimal.Decimal{
	decimal.NewFromInt(50),
	decimal.RequireFromString("62.5"),
	decimal.RequireFromString("72.5"),
}

// StandardMix dilutes pure silver to targetPurity with a 50/50
// jast+copper filler.
func StandardMix(pureSilver, targetPurity decimal.Decimal) (StandardMixResult, error) {
	base, err := DilutePureSilver(pureSilver, targetPurity)
	if err != nil {
		return StandardMixResult{}, err
	}

	two := decimal.NewFromInt(2)
	half := base.CopperToAdd.Div(two)
	return StandardMixResult{
		FinalMixMass:   base.FinalTotalMass,
		AdditionNeeded: base.CopperToAdd,
		JastToAdd:      half,
		CopperToAdd:    half,
	}, nil
}

// Batch is one lot of silver in a multi-batch blend.
type Batch struct {
	Weight decimal.Decimal `json:"weight"`
	Purity decimal.Decimal `json:"purity"`
}

// BlendResult is the output of the Type 4 calculator.
type BlendResult struct {
	BatchPureSilver  []decimal.Decimal `json:"batch_pure_silver"`
	TotalWeight      decimal.Decimal   `json:"total_weight"`
	TotalPureSilver  decimal.Decimal   `json:"total_pure_silver"`
	CurrentPurity    decimal.Decimal   `json:"current_purity"`
	PureSilverToAdd  decimal.Decimal   `json:"pure_silver_to_add"`
	FinalTotalPure   decimal.Decimal   `json:"final_total_pure"`
	FinalTotalWeight decimal.Decimal   `json:"final_total_weight"`
	FinalPurity      decimal.Decimal   `json:"final_purity"`
}

// BlendBatches solves for the pure silver (100%) to add to a set of
// batches so the blended purity reaches targetPurity:
//
//	x = (target*totalWeight - 100*totalPure) / (100 - target)
//
// target = 100 is rejected up front: the denominator collapses and no
// finite addition reaches full purity.
func BlendBatches(batches []Batch, targetPurity decimal.Decimal) (BlendResult, error) {
	if len(batches) < 2 {
		return BlendResult{}, &InvalidInputError{Field: "batches", Reason: "at least two batches are required"}
	}
	if !targetPurity.IsPositive() {
		return BlendResult{}, &InvalidInputError{Field: "target_purity", Reason: "must be greater than zero"}
	}
	if targetPurity.GreaterThanOrEqual(hundred) {
		return BlendResult{}, &InvalidInputError{Field: "target_purity", Reason: "must be below 100"}
	}

	result := BlendResult{BatchPureSilver: make([]decimal.Decimal, 0, len(batches))}
	for i, b := range batches {
		if !b.Weight.IsPositive() {
			return BlendResult{}, &InvalidInputError{
				Field:  fmt.Sprintf("batches[%d].weight", i),
				Reason: "must be greater than zero",
			}
		}
		if b.Purity.IsNegative() || b.Purity.GreaterThan(hundred) {
			return BlendResult{}, &InvalidInputError{
				Field:  fmt.Sprintf("batches[%d].purity", i),
				Reason: "must be between 0 and 100",
			}
		}

		pureInBatch := b.Weight.Mul(b.Purity).Div(hundred)
		result.BatchPureSilver = append(result.BatchPureSilver, pureInBatch)
		result.TotalPureSilver = result.TotalPureSilver.Add(pureInBatch)
		result.TotalWeight = result.TotalWeight.Add(b.Weight)
	}

	result.CurrentPurity = result.TotalPureSilver.Div(result.TotalWeight).Mul(hundred)

	numerator := targetPurity.Mul(result.TotalWeight).Sub(hundred.Mul(result.TotalPureSilver))
	result.PureSilverToAdd = numerator.Div(hundred.Sub(targetPurity))

	result.FinalTotalPure = result.TotalPureSilver.Add(result.PureSilverToAdd)
	result.FinalTotalWeight = result.TotalWeight.Add(result.PureSilverToAdd)
	result.FinalPurity = result.FinalTotalPure.Div(result.FinalTotalWeight).Mul(hundred)

	if result.PureSilverToAdd.IsNegative() {
		return result, &ConstraintError{
			Reason: "blend is already above the target purity",
			Amount: result.PureSilverToAdd,
		}
	}

	return result, nil
}
