// Package report renders a completed portfolio evaluation as a one-shot
// document: a styled text report for terminals, a markdown report for wikis
// and pull requests, and a JSON export for downstream tooling.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"stackshift/internal/engine"
	"stackshift/internal/format"
	"stackshift/internal/model"
)

// Palette shared with the dashboard so one-shot and interactive output read
// the same. lipgloss degrades these to plain text on dumb terminals.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")

	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorGray)
	styleCaveat = lipgloss.NewStyle().Foreground(colorYellow)
)

// tierStyle returns the display style for a recommendation tier.
func tierStyle(tier model.Recommendation) lipgloss.Style {
	switch tier {
	case model.StayOnCurrentStack:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case model.HybridApproach:
		return lipgloss.NewStyle().Foreground(colorCyan)
	case model.MigrateWithPlan:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case model.MigrateUrgently:
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorGray)
	}
}

// Report is a render-ready view over one portfolio evaluation.
type Report struct {
	Origin      string
	Portfolio   *model.Portfolio
	Assessments []model.Assessment
	Summary     model.PortfolioSummary
	GeneratedAt time.Time
}

// New builds a Report from completed assessments. origin describes where the
// portfolio came from (file path, "stdin", or a URL) and appears verbatim in
// the output.
func New(origin string, p *model.Portfolio, assessments []model.Assessment) *Report {
	return &Report{
		Origin:      origin,
		Portfolio:   p,
		Assessments: assessments,
		Summary:     engine.Summarize(assessments),
		GeneratedAt: time.Now(),
	}
}

// Render produces the report in the requested output format: "text",
// "markdown" (or "md"), or "json".
func (r *Report) Render(outputFormat string) (string, error) {
	switch outputFormat {
	case "text":
		return r.renderText(), nil
	case "markdown", "md":
		return r.renderMarkdown(), nil
	case "json":
		return r.renderJSON()
	default:
		return "", fmt.Errorf("%w: unknown report format %q", model.ErrInvalidInput, outputFormat)
	}
}

// barWidth is the fixed width of the category point bars in the text report.
const barWidth = 15

// renderText renders the terminal report: a header, the portfolio table,
// one breakdown section per service, and the summary line.
func (r *Report) renderText() string {
	var b strings.Builder

	title := "stackshift migration assessment"
	if r.Portfolio.Name != "" {
		title += " · " + r.Portfolio.Name
	}
	b.WriteString(styleTitle.Render(title) + "\n")
	meta := fmt.Sprintf("source %s · %d services · generated %s",
		r.Origin, r.Summary.ServiceCount, r.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(styleDim.Render(meta) + "\n\n")

	b.WriteString(r.servicesTable())
	b.WriteString("\n\n")

	for i := range r.Assessments {
		b.WriteString(r.serviceSection(&r.Assessments[i]))
		b.WriteString("\n")
	}

	b.WriteString(r.summaryLine() + "\n")
	return b.String()
}

// servicesTable renders the portfolio overview with one row per service.
func (r *Report) servicesTable() string {
	assessments := r.Assessments
	t := ltable.New().
		Headers("Service", "RPS", "Cost/mo", "P99", "Team", "Score", "Tier").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			if col == 6 && row >= 0 && row < len(assessments) {
				return tierStyle(assessments[row].Tier)
			}
			if col >= 1 && col <= 5 {
				return lipgloss.NewStyle().Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	for i := range assessments {
		a := &assessments[i]
		t = t.Row(
			a.Service.DisplayName(),
			format.FormatRate(a.Service.RequestsPerSecond),
			format.FormatMoney(a.Service.MonthlyInfraCost),
			format.FormatLatency(a.Service.P99LatencyMs),
			strconv.Itoa(a.Service.TeamSize),
			format.FormatScore(a.Total),
			a.Tier.String(),
		)
	}
	return t.String()
}

// serviceSection renders one service's category breakdown, caveats, and ROI.
func (r *Report) serviceSection(a *model.Assessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		styleTitle.Render(a.Service.DisplayName()),
		format.FormatScore(a.Total),
		tierStyle(a.Tier).Render(a.Tier.String())))

	for _, c := range a.Breakdown.Categories() {
		b.WriteString(fmt.Sprintf("  %-12s %2d/%-2d %s\n",
			c.Label, c.Points, c.Max, pointsBar(c.Points, c.Max, barWidth)))
	}

	for _, cv := range a.Caveats {
		b.WriteString(styleCaveat.Render("  ! "+cv) + "\n")
	}

	if a.ROI != nil {
		b.WriteString("  " + roiLine(a.ROI) + "\n")
	}
	return b.String()
}

// roiLine condenses an ROI result into a single display line.
func roiLine(roi *model.ROIResult) string {
	return fmt.Sprintf("ROI: %s/mo savings · %s/yr · payback %s · year 1 %s · 3-year %s",
		format.FormatMoney(roi.MonthlySavings),
		format.FormatMoney(roi.AnnualBenefit),
		format.FormatMonths(roi.PaybackMonths, roi.PaybackDefined),
		format.FormatPercent(roi.Year1ROIPercent),
		format.FormatPercent(roi.ThreeYearROIPercent))
}

// summaryLine renders the one-line portfolio rollup. Tiers with no services
// are omitted.
func (r *Report) summaryLine() string {
	s := r.Summary
	parts := []string{
		fmt.Sprintf("%d services", s.ServiceCount),
		fmt.Sprintf("avg score %.1f", s.AverageScore),
	}
	for tier := model.MigrateUrgently; tier >= model.StayOnCurrentStack; tier-- {
		if n := s.CountFor(tier); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(tier.Short())))
		}
	}
	parts = append(parts, format.FormatMoney(s.TotalMonthlyCost)+"/mo total spend")
	return styleTitle.Render("Portfolio") + "  " + strings.Join(parts, " · ")
}

// pointsBar renders a fixed-width bar filled proportionally to
// points/maxPoints, using the block characters from the dashboard mini bars.
func pointsBar(points, maxPoints, width int) string {
	if width <= 0 || maxPoints <= 0 {
		return ""
	}
	if points < 0 {
		points = 0
	}
	if points > maxPoints {
		points = maxPoints
	}
	filled := points * width / maxPoints
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
