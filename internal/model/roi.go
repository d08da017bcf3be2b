package model

import "github.com/shopspring/decimal"

// ROIInputs are the cost/benefit figures for one migration scenario.
// DevelopmentCost is the one-off migration spend; the monthly costs are the
// run costs before and after the move.
type ROIInputs struct {
	DevelopmentCost         Money
	MigrationDurationMonths int
	CurrentMonthlyCost      Money
	ProjectedMonthlyCost    Money
	OtherAnnualBenefits     Money
}

// ROIResult holds the derived return figures. Currency fields round to the
// cent, percentages to 0.1%, month figures to 0.1.
type ROIResult struct {
	MonthlySavings  Money           `json:"monthly_savings"`
	AnnualBenefit   Money           `json:"annual_benefit"`
	Year1ROIPercent decimal.Decimal `json:"year1_roi_percent"`
	// PaybackDefined is false when monthly savings are zero or negative:
	// the migration never pays back through infrastructure spend alone.
	// PaybackMonths and BreakEvenMonths are meaningless in that case and
	// consumers must check the flag before reading them.
	PaybackDefined bool            `json:"payback_defined"`
	PaybackMonths  decimal.Decimal `json:"payback_months"`
	// BreakEvenMonths is the payback measured from the start of the
	// migration rather than its end: duration + payback.
	BreakEvenMonths     decimal.Decimal `json:"break_even_months"`
	ThreeYearROIPercent decimal.Decimal `json:"three_year_roi_percent"`
}
