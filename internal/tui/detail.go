package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stackshift/internal/format"
	"stackshift/internal/model"
)

// renderDetail renders the pinned service's full assessment: the category
// breakdown with point bars, the input profile, caveats, and the ROI panel.
// Falls back to a hint when the service vanished on a refresh.
func renderDetail(app *App) string {
	a := app.findAssessment(app.detailName)
	if a == nil {
		return StyleDim.Render("  service no longer in the portfolio (esc to close)")
	}

	var parts []string

	title := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).
		Render(sanitize(a.Service.DisplayName()))
	badge := tierStyle(a.Tier).Render(a.Tier.Short())
	parts = append(parts, fmt.Sprintf("%s  %s  %s", title, format.FormatScore(a.Total), badge))
	parts = append(parts, "")

	// Category breakdown with proportional bars.
	for _, c := range a.Breakdown.Categories() {
		pct := 0.0
		if c.Max > 0 {
			pct = float64(c.Points) / float64(c.Max) * 100
		}
		bar := renderMiniBar(pct, 18)
		parts = append(parts, fmt.Sprintf("  %-12s %2d/%-2d %s", c.Label, c.Points, c.Max, bar))
	}
	parts = append(parts, "")

	parts = append(parts, StyleDim.Render("  "+profileLine(a.Service)))
	if flags := flagLabels(a.Service); len(flags) > 0 {
		parts = append(parts, StyleDim.Render("  flags: "+strings.Join(flags, ", ")))
	}

	if len(a.Caveats) > 0 {
		parts = append(parts, "")
		for _, cv := range a.Caveats {
			parts = append(parts, StyleYellow.Render("  ! "+cv))
		}
	}

	parts = append(parts, "")
	parts = append(parts, renderROIPanel(a))
	parts = append(parts, StyleDim.Render("  esc to close"))

	return strings.Join(parts, "\n")
}

// profileLine condenses the numeric inputs into one line.
func profileLine(m model.ServiceMetrics) string {
	return fmt.Sprintf("%s  %s/mo  p99 %s  team of %d  %.1f deploys/day",
		format.FormatRate(m.RequestsPerSecond),
		format.FormatMoney(m.MonthlyInfraCost),
		format.FormatLatency(m.P99LatencyMs),
		m.TeamSize,
		m.DeploysPerDay)
}

// flagLabels lists the active boolean flags on the record in display order.
func flagLabels(m model.ServiceMetrics) []string {
	var out []string
	if m.HighConcurrency {
		out = append(out, "high concurrency")
	}
	if m.RealTime {
		out = append(out, "real-time")
	}
	if m.GCPressure {
		out = append(out, "gc pressure")
	}
	if m.ColdStarts {
		out = append(out, "cold starts")
	}
	if m.DeploymentFriction {
		out = append(out, "deployment friction")
	}
	if m.AutoscaleLag {
		out = append(out, "autoscale lag")
	}
	if m.HighTurnover {
		out = append(out, "high turnover")
	}
	if m.SlowOnboarding {
		out = append(out, "slow onboarding")
	}
	if m.HasComplexTransactions {
		out = append(out, "complex transactions")
	}
	return out
}

// renderROIPanel renders the migration plan figures in a rounded-border
// card, or a dim placeholder when the record has no plan.
func renderROIPanel(a *model.Assessment) string {
	if a.ROI == nil || a.Service.Migration == nil {
		return StyleDim.Render("  no migration plan provided")
	}

	roi := a.ROI
	plan := a.Service.Migration

	label := lipgloss.NewStyle().Foreground(colorGray)
	value := lipgloss.NewStyle().Bold(true).Foreground(colorWhite)

	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-16s", name)) + value.Render(v)
	}

	payback := format.FormatMonths(roi.PaybackMonths, roi.PaybackDefined)
	breakEven := format.FormatMonths(roi.BreakEvenMonths, roi.PaybackDefined)
	if !roi.PaybackDefined {
		// The tables show the compact "never"; the card has room to say why.
		payback = "undefined (no monthly savings)"
		breakEven = "undefined"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Migration ROI"),
		row("Dev cost", format.FormatMoney(plan.DevelopmentCost)+fmt.Sprintf("  over %d mo", plan.DurationMonths)),
		row("Monthly savings", format.FormatMoney(roi.MonthlySavings)),
		row("Annual benefit", format.FormatMoney(roi.AnnualBenefit)),
		row("Payback", payback),
		row("Break-even", breakEven),
		row("Year-1 ROI", format.FormatPercent(roi.Year1ROIPercent)),
		row("3-year ROI", format.FormatPercent(roi.ThreeYearROIPercent)),
	}
	return StyleDetailCard.Render(strings.Join(lines, "\n"))
}
