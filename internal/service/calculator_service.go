package service

import (
	"fmt"

	"backend/internal/billing"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// Calculator requests take numbers as strings so decimal inputs survive
// JSON intact, matching the billing endpoints.

type MixRequest struct {
	PureSilverWeight string `json:"pure_silver_weight" binding:"required"`
	RawSilverWeight  string `json:"raw_silver_weight"`
	RawSilverPurity  string `json:"raw_silver_purity"`
	TargetPurity     string `json:"target_purity" binding:"required"`
}

type MixResponse struct {
	TotalPureSilver string `json:"total_pure_silver"`
	InitialWeight   string `json:"initial_weight"`
	CurrentPurity   string `json:"current_purity"`
	FinalTotalMass  string `json:"final_total_mass"`
	CopperToAdd     string `json:"copper_to_add"`
}

type DilutionRequest struct {
	PureSilverWeight string `json:"pure_silver_weight" binding:"required"`
	TargetPurity     string `json:"target_purity" binding:"required"`
}

type DilutionResponse struct {
	FinalTotalMass string `json:"final_total_mass"`
	CopperToAdd    string `json:"copper_to_add"`
}

type StandardMixResponse struct {
	FinalMixMass   string `json:"final_mix_mass"`
	AdditionNeeded string `json:"addition_needed"`
	JastToAdd      string `json:"jast_to_add"`
	CopperToAdd    string `json:"copper_to_add"`
}

type BatchRequest struct {
	Weight string `json:"weight" binding:"required"`
	Purity string `json:"purity" binding:"required"`
}

type BlendRequest struct {
	Batches      []BatchRequest `json:"batches" binding:"required"`
	TargetPurity string         `json:"target_purity" binding:"required"`
}

type BlendResponse struct {
	BatchPureSilver  []string `json:"batch_pure_silver"`
	TotalWeight      string   `json:"total_weight"`
	TotalPureSilver  string   `json:"total_pure_silver"`
	CurrentPurity    string   `json:"current_purity"`
	PureSilverToAdd  string   `json:"pure_silver_to_add"`
	FinalTotalPure   string   `json:"final_total_pure"`
	FinalTotalWeight string   `json:"final_total_weight"`
	FinalPurity      string   `json:"final_purity"`
}

// --- Interface ---

// CalculatorService is a thin DTO layer over the pure mixing formulas.
// Constraint errors still return the computed result so the caller can
// show the impossible value alongside the message.
type CalculatorService interface {
	Mix(req MixRequest) (*MixResponse, error)
	Dilute(req DilutionRequest) (*DilutionResponse, error)
	StandardMix(req DilutionRequest) (*StandardMixResponse, error)
	Blend(req BlendRequest) (*BlendResponse, error)
}

type calculatorService struct{}

func NewCalculatorService() CalculatorService {
	return &calculatorService{}
}

// --- Implementation ---

func grams(d decimal.Decimal) string   { return d.StringFixed(3) }
func percent(d decimal.Decimal) string { return d.StringFixed(3) }

func toMixResponse(r billing.MixResult) *MixResponse {
	return &MixResponse{
		TotalPureSilver: grams(r.TotalPureSilver),
		InitialWeight:   grams(r.InitialWeight),
		CurrentPurity:   percent(r.CurrentPurity),
		FinalTotalMass:  grams(r.FinalTotalMass),
		CopperToAdd:     grams(r.CopperToAdd),
	}
}

func (s *calculatorService) Mix(req MixRequest) (*MixResponse, error) {
	pure, err := parseDecimalField(req.PureSilverWeight, "pure_silver_weight")
	if err != nil {
		return nil, err
	}
	raw, err := parseDecimalField(req.RawSilverWeight, "raw_silver_weight")
	if err != nil {
		return nil, err
	}
	rawPurity, err := parseDecimalField(req.RawSilverPurity, "raw_silver_purity")
	if err != nil {
		return nil, err
	}
	target, err := parseDecimalField(req.TargetPurity, "target_purity")
	if err != nil {
		return nil, err
	}

	result, err := billing.MixToTargetPurity(pure, raw, rawPurity, target)
	if err != nil {
		return toMixResponse(result), err
	}
	return toMixResponse(result), nil
}

func (s *calculatorService) Dilute(req DilutionRequest) (*DilutionResponse, error) {
	pure, target, err := parseDilution(req)
	if err != nil {
		return nil, err
	}

	result, err := billing.DilutePureSilver(pure, target)
	if err != nil {
		return nil, err
	}
	return &DilutionResponse{
		FinalTotalMass: grams(result.FinalTotalMass),
		CopperToAdd:    grams(result.CopperToAdd),
	}, nil
}

func (s *calculatorService) StandardMix(req DilutionRequest) (*StandardMixResponse, error) {
	pure, target, err := parseDilution(req)
	if err != nil {
		return nil, err
	}

	result, err := billing.StandardMix(pure, target)
	if err != nil {
		return nil, err
	}
	return &StandardMixResponse{
		FinalMixMass:   grams(result.FinalMixMass),
		AdditionNeeded: grams(result.AdditionNeeded),
		JastToAdd:      grams(result.JastToAdd),
		CopperToAdd:    grams(result.CopperToAdd),
	}, nil
}

func (s *calculatorService) Blend(req BlendRequest) (*BlendResponse, error) {
	target, err := parseDecimalField(req.TargetPurity, "target_purity")
	if err != nil {
		return nil, err
	}

	batches := make([]billing.Batch, 0, len(req.Batches))
	for i, b := range req.Batches {
		weight, err := parseDecimalField(b.Weight, fmt.Sprintf("batches[%d].weight", i))
		if err != nil {
			return nil, err
		}
		purity, err := parseDecimalField(b.Purity, fmt.Sprintf("batches[%d].purity", i))
		if err != nil {
			return nil, err
		}
		batches = append(batches, billing.Batch{Weight: weight, Purity: purity})
	}

	result, err := billing.BlendBatches(batches, target)
	resp := &BlendResponse{
		TotalWeight:      grams(result.TotalWeight),
		TotalPureSilver:  grams(result.TotalPureSilver),
		CurrentPurity:    percent(result.CurrentPurity),
		PureSilverToAdd:  grams(result.PureSilverToAdd),
		FinalTotalPure:   grams(result.FinalTotalPure),
		FinalTotalWeight: grams(result.FinalTotalWeight),
		FinalPurity:      percent(result.FinalPurity),
	}
	for _, p := range result.BatchPureSilver {
		resp.BatchPureSilver = append(resp.BatchPureSilver, grams(p))
	}
	if err != nil {
		return resp, err
	}
	return resp, nil
}

func parseDilution(req DilutionRequest) (pure, target decimal.Decimal, err error) {
	if pure, err = parseDecimalField(req.PureSilverWeight, "pure_silver_weight"); err != nil {
		return
	}
	target, err = parseDecimalField(req.TargetPurity, "target_purity")
	return
}
