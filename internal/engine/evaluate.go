package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stackshift/internal/model"
)

// Evaluate runs the full pipeline for one service record: score, classify,
// and, when the record carries a migration plan, estimate ROI. Caveats are
// attached last since some depend on the ROI outcome.
func Evaluate(m model.ServiceMetrics) (model.Assessment, error) {
	breakdown, err := Score(m)
	if err != nil {
		return model.Assessment{}, err
	}
	total := breakdown.Total()
	tier, err := Classify(total)
	if err != nil {
		return model.Assessment{}, err
	}

	a := model.Assessment{
		Service:   m,
		Breakdown: breakdown,
		Total:     total,
		Tier:      tier,
	}
	if m.Migration != nil {
		roi, err := EstimateROI(roiInputs(m))
		if err != nil {
			return model.Assessment{}, err
		}
		a.ROI = &roi
	}
	a.Caveats = caveats(a)
	return a, nil
}

// EvaluateAll evaluates every service in the portfolio and returns
// assessments in portfolio order. Services are independent, so they are
// evaluated concurrently; the first invalid record fails the whole portfolio
// with an error naming the service.
func EvaluateAll(ctx context.Context, p *model.Portfolio) ([]model.Assessment, error) {
	if len(p.Services) == 0 {
		return nil, fmt.Errorf("%w: portfolio has no services", model.ErrInvalidInput)
	}

	out := make([]model.Assessment, len(p.Services))
	g, gctx := errgroup.WithContext(ctx)
	for i := range p.Services {
		i := i // per-iteration copy; required while go.mod targets go < 1.22
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := Evaluate(p.Services[i])
			if err != nil {
				return fmt.Errorf("service %q: %w", p.Services[i].DisplayName(), err)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize aggregates assessments into the portfolio header figures.
// Callers that exclude services from the rollup filter the slice first;
// scores are never merged across services beyond counting and averaging.
func Summarize(assessments []model.Assessment) model.PortfolioSummary {
	s := model.PortfolioSummary{ServiceCount: len(assessments)}
	if len(assessments) == 0 {
		return s
	}
	totalScore := 0
	totalCost := decimal.Zero
	for _, a := range assessments {
		totalScore += a.Total
		if a.Tier >= 0 && int(a.Tier) < len(s.TierCounts) {
			s.TierCounts[a.Tier]++
		}
		totalCost = totalCost.Add(a.Service.MonthlyInfraCost.Decimal)
	}
	s.AverageScore = float64(totalScore) / float64(len(assessments))
	s.TotalMonthlyCost = model.NewMoney(totalCost)
	return s
}

// roiInputs assembles estimator inputs from the record's migration plan.
// The plan's current-cost override wins over the service infra cost when set.
func roiInputs(m model.ServiceMetrics) model.ROIInputs {
	plan := m.Migration
	current := m.MonthlyInfraCost
	if !plan.CurrentMonthlyCost.IsZero() {
		current = plan.CurrentMonthlyCost
	}
	return model.ROIInputs{
		DevelopmentCost:         plan.DevelopmentCost,
		MigrationDurationMonths: plan.DurationMonths,
		CurrentMonthlyCost:      current,
		ProjectedMonthlyCost:    plan.ProjectedMonthlyCost,
		OtherAnnualBenefits:     plan.OtherAnnualBenefits,
	}
}

// caveats returns warnings for conditions that argue against a migration the
// score recommends. The tier itself is selected from the score alone and is
// never adjusted here; the conditions only annotate the result.
func caveats(a model.Assessment) []string {
	if a.Tier < model.MigrateWithPlan {
		return nil
	}
	var out []string
	if a.Service.HasComplexTransactions {
		out = append(out, "Complex transactional logic is hard to port faithfully. Budget extra time for parity testing before cutover.")
	}
	if a.Service.TeamSize <= 2 {
		out = append(out, fmt.Sprintf("A team of %d has little slack for a rewrite. Staff up or narrow the migration scope.", a.Service.TeamSize))
	}
	if a.Service.DeploysPerDay >= 10 {
		out = append(out, fmt.Sprintf("%.0f deploys/day leaves narrow change windows. A long-lived migration branch will fight the release cadence.", a.Service.DeploysPerDay))
	}
	if a.ROI != nil && !a.ROI.PaybackDefined {
		out = append(out, "Projected run cost is not below the current cost. The migration never pays back through infrastructure savings alone.")
	}
	return out
}
