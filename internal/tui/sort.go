package tui

import (
	"sort"
	"strings"

	"stackshift/internal/model"
)

// nameLess orders two assessments by service name, case-insensitively.
// It is the tie-breaker for every sortable column.
func nameLess(a, b model.Assessment) bool {
	return strings.ToLower(a.Service.DisplayName()) < strings.ToLower(b.Service.DisplayName())
}

// sortAssessments returns a sorted copy of rows for the services table.
// Column mapping:
//
//	0=Service, 1=RPS, 2=Cost/mo, 3=P99, 4=Team, 5=Dep/d, 6=Score, 7=Tier
//
// col -1 means no sort (preserve order). Ties are broken by service name
// ascending.
func sortAssessments(rows []model.Assessment, col int, desc bool) []model.Assessment {
	out := make([]model.Assessment, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch col {
		case 0:
			less = nameLess(a, b)
		case 1:
			if a.Service.RequestsPerSecond != b.Service.RequestsPerSecond {
				less = a.Service.RequestsPerSecond < b.Service.RequestsPerSecond
			} else {
				return nameLess(a, b)
			}
		case 2:
			if c := a.Service.MonthlyInfraCost.Cmp(b.Service.MonthlyInfraCost.Decimal); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 3:
			if a.Service.P99LatencyMs != b.Service.P99LatencyMs {
				less = a.Service.P99LatencyMs < b.Service.P99LatencyMs
			} else {
				return nameLess(a, b)
			}
		case 4:
			if a.Service.TeamSize != b.Service.TeamSize {
				less = a.Service.TeamSize < b.Service.TeamSize
			} else {
				return nameLess(a, b)
			}
		case 5:
			if a.Service.DeploysPerDay != b.Service.DeploysPerDay {
				less = a.Service.DeploysPerDay < b.Service.DeploysPerDay
			} else {
				return nameLess(a, b)
			}
		case 6:
			if a.Total != b.Total {
				less = a.Total < b.Total
			} else {
				return nameLess(a, b)
			}
		case 7:
			if a.Tier != b.Tier {
				less = a.Tier < b.Tier
			} else {
				return nameLess(a, b)
			}
		default:
			less = nameLess(a, b)
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// sortROIRows returns a sorted copy of rows for the ROI table. Every row is
// an assessment with a non-nil ROI. Column mapping:
//
//	0=Service, 1=Dev Cost, 2=Save/mo, 3=Annual, 4=Payback, 5=Break-even,
//	6=Year 1, 7=3-year
//
// Rows with undefined payback sort last on the payback and break-even
// columns regardless of direction. Ties are broken by service name ascending.
func sortROIRows(rows []model.Assessment, col int, desc bool) []model.Assessment {
	out := make([]model.Assessment, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if col == 4 || col == 5 {
			if a.ROI.PaybackDefined != b.ROI.PaybackDefined {
				// Undefined payback sorts last in either direction.
				return a.ROI.PaybackDefined
			}
		}
		var less bool
		switch col {
		case 0:
			less = nameLess(a, b)
		case 1:
			if c := a.Service.Migration.DevelopmentCost.Cmp(b.Service.Migration.DevelopmentCost.Decimal); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 2:
			if c := a.ROI.MonthlySavings.Cmp(b.ROI.MonthlySavings.Decimal); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 3:
			if c := a.ROI.AnnualBenefit.Cmp(b.ROI.AnnualBenefit.Decimal); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 4:
			if c := a.ROI.PaybackMonths.Cmp(b.ROI.PaybackMonths); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 5:
			if c := a.ROI.BreakEvenMonths.Cmp(b.ROI.BreakEvenMonths); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 6:
			if c := a.ROI.Year1ROIPercent.Cmp(b.ROI.Year1ROIPercent); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		case 7:
			if c := a.ROI.ThreeYearROIPercent.Cmp(b.ROI.ThreeYearROIPercent); c != 0 {
				less = c < 0
			} else {
				return nameLess(a, b)
			}
		default:
			less = nameLess(a, b)
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// filterAssessments returns rows whose service name or tier label contains
// search (case-insensitive). Returns all rows when search is empty.
func filterAssessments(rows []model.Assessment, search string) []model.Assessment {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Service.DisplayName()), lower) ||
			strings.Contains(strings.ToLower(r.Tier.String()), lower) {
			out = append(out, r)
		}
	}
	return out
}

// filterROIRows returns rows whose service name contains search
// (case-insensitive). Returns all rows when search is empty.
func filterROIRows(rows []model.Assessment, search string) []model.Assessment {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Service.DisplayName()), lower) {
			out = append(out, r)
		}
	}
	return out
}

// roiRows returns the assessments that carry an ROI estimate.
func roiRows(assessments []model.Assessment) []model.Assessment {
	out := assessments[:0:0]
	for _, a := range assessments {
		if a.ROI != nil {
			out = append(out, a)
		}
	}
	return out
}
