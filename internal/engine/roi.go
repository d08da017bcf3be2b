package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stackshift/internal/model"
)

// Rounding policy for ROI figures.
const (
	centPlaces    = 2 // currency
	percentPlaces = 1 // percentages
	monthPlaces   = 1 // payback and break-even
)

var (
	threeDec   = decimal.NewFromInt(3)
	twelveDec  = decimal.NewFromInt(12)
	hundredDec = decimal.NewFromInt(100)
)

// EstimateROI derives the return figures for one migration scenario:
//
//	monthlySavings = current - projected
//	annualBenefit  = monthlySavings*12 + otherAnnualBenefits
//	year1ROI%      = (annualBenefit - developmentCost) / developmentCost * 100
//	paybackMonths  = developmentCost / monthlySavings
//	threeYearROI%  = (3*annualBenefit - developmentCost) / developmentCost * 100
//
// All arithmetic is decimal so currency figures never drift. Zero or
// negative monthly savings is an expected business outcome, not an error:
// PaybackDefined is false and the payback fields are left zero. Development
// cost must be positive and the remaining inputs non-negative; violations
// return ErrInvalidInput.
func EstimateROI(in model.ROIInputs) (model.ROIResult, error) {
	if !in.DevelopmentCost.IsPositive() {
		return model.ROIResult{}, fmt.Errorf("%w: development cost must be positive, got %s", model.ErrInvalidInput, in.DevelopmentCost)
	}
	if in.MigrationDurationMonths < 0 {
		return model.ROIResult{}, fmt.Errorf("%w: migration duration must be non-negative, got %d", model.ErrInvalidInput, in.MigrationDurationMonths)
	}
	if in.CurrentMonthlyCost.IsNegative() {
		return model.ROIResult{}, fmt.Errorf("%w: current monthly cost must be non-negative, got %s", model.ErrInvalidInput, in.CurrentMonthlyCost)
	}
	if in.ProjectedMonthlyCost.IsNegative() {
		return model.ROIResult{}, fmt.Errorf("%w: projected monthly cost must be non-negative, got %s", model.ErrInvalidInput, in.ProjectedMonthlyCost)
	}
	if in.OtherAnnualBenefits.IsNegative() {
		return model.ROIResult{}, fmt.Errorf("%w: other annual benefits must be non-negative, got %s", model.ErrInvalidInput, in.OtherAnnualBenefits)
	}

	dev := in.DevelopmentCost.Decimal
	savings := in.CurrentMonthlyCost.Sub(in.ProjectedMonthlyCost.Decimal)
	annual := savings.Mul(twelveDec).Add(in.OtherAnnualBenefits.Decimal)

	res := model.ROIResult{
		MonthlySavings:      model.NewMoney(savings.Round(centPlaces)),
		AnnualBenefit:       model.NewMoney(annual.Round(centPlaces)),
		Year1ROIPercent:     annual.Sub(dev).Div(dev).Mul(hundredDec).Round(percentPlaces),
		ThreeYearROIPercent: annual.Mul(threeDec).Sub(dev).Div(dev).Mul(hundredDec).Round(percentPlaces),
	}

	if savings.IsPositive() {
		payback := dev.Div(savings).Round(monthPlaces)
		res.PaybackDefined = true
		res.PaybackMonths = payback
		res.BreakEvenMonths = decimal.NewFromInt(int64(in.MigrationDurationMonths)).Add(payback).Round(monthPlaces)
	}
	return res, nil
}
