package report

import (
	"fmt"
	"strings"
	"time"

	"stackshift/internal/format"
	"stackshift/internal/model"
)

// renderMarkdown renders the report as a markdown document: the portfolio
// table, a summary table, then one section per service. Intended for wikis
// and pull request descriptions.
func (r *Report) renderMarkdown() string {
	var b strings.Builder

	title := "Migration assessment"
	if r.Portfolio.Name != "" {
		title += ": " + r.Portfolio.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source `%s`, generated %s.\n\n", r.Origin, r.GeneratedAt.Format(time.RFC3339))

	b.WriteString("| Service | RPS | Cost/mo | P99 | Team | Score | Tier |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---|\n")
	for i := range r.Assessments {
		a := &r.Assessments[i]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s |\n",
			a.Service.DisplayName(),
			format.FormatRate(a.Service.RequestsPerSecond),
			format.FormatMoney(a.Service.MonthlyInfraCost),
			format.FormatLatency(a.Service.P99LatencyMs),
			a.Service.TeamSize,
			format.FormatScore(a.Total),
			a.Tier.String())
	}
	b.WriteString("\n")

	r.markdownSummary(&b)

	for i := range r.Assessments {
		r.markdownService(&b, &r.Assessments[i])
	}
	return b.String()
}

func (r *Report) markdownSummary(b *strings.Builder) {
	s := r.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Services | Avg score | Urgent | Plan | Hybrid | Stay | Monthly spend |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(b, "| %d | %.1f | %d | %d | %d | %d | %s |\n\n",
		s.ServiceCount,
		s.AverageScore,
		s.CountFor(model.MigrateUrgently),
		s.CountFor(model.MigrateWithPlan),
		s.CountFor(model.HybridApproach),
		s.CountFor(model.StayOnCurrentStack),
		format.FormatMoney(s.TotalMonthlyCost))
}

func (r *Report) markdownService(b *strings.Builder, a *model.Assessment) {
	fmt.Fprintf(b, "## %s\n\n", a.Service.DisplayName())
	fmt.Fprintf(b, "**%s**, score %s.\n\n", a.Tier, format.FormatScore(a.Total))

	b.WriteString("| Category | Points | Max |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, c := range a.Breakdown.Categories() {
		fmt.Fprintf(b, "| %s | %d | %d |\n", c.Label, c.Points, c.Max)
	}
	b.WriteString("\n")

	if len(a.Caveats) > 0 {
		for _, cv := range a.Caveats {
			fmt.Fprintf(b, "- %s\n", cv)
		}
		b.WriteString("\n")
	}

	if a.ROI != nil {
		roi := a.ROI
		b.WriteString("| Monthly savings | Annual benefit | Payback | Break-even | Year-1 ROI | 3-year ROI |\n")
		b.WriteString("|---:|---:|---:|---:|---:|---:|\n")
		breakEven := format.FormatMonths(roi.BreakEvenMonths, roi.PaybackDefined)
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n\n",
			format.FormatMoney(roi.MonthlySavings),
			format.FormatMoney(roi.AnnualBenefit),
			format.FormatMonths(roi.PaybackMonths, roi.PaybackDefined),
			breakEven,
			format.FormatPercent(roi.Year1ROIPercent),
			format.FormatPercent(roi.ThreeYearROIPercent))
	}
}
