package model

import (
	"fmt"
	"time"
)

// Portfolio is a named set of services under evaluation. A single-service
// record is represented as a portfolio of one.
type Portfolio struct {
	Name     string           `json:"name" yaml:"name"`
	Services []ServiceMetrics `json:"services" yaml:"services"`
	// FetchedAt is stamped by the source that produced the record.
	FetchedAt time.Time `json:"-" yaml:"-"`
}

// Validate requires at least one service and checks every record.
func (p *Portfolio) Validate() error {
	if len(p.Services) == 0 {
		return fmt.Errorf("%w: portfolio has no services", ErrInvalidInput)
	}
	for i := range p.Services {
		if err := p.Services[i].Validate(); err != nil {
			return fmt.Errorf("service %q: %w", p.Services[i].DisplayName(), err)
		}
	}
	return nil
}

// Assessment is the evaluation output for a single service: the input
// record, the per-category points, the tier, and any presentation caveats.
// ROI is nil when the record carries no migration plan.
type Assessment struct {
	Service   ServiceMetrics `json:"service"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Total     int            `json:"total_score"`
	Tier      Recommendation `json:"tier"`
	Caveats   []string       `json:"caveats,omitempty"`
	ROI       *ROIResult     `json:"roi,omitempty"`
}

// PortfolioSummary aggregates assessments for display. Services are scored
// independently; the summary counts and averages but never merges scores
// across services.
type PortfolioSummary struct {
	ServiceCount int     `json:"service_count"`
	AverageScore float64 `json:"average_score"`
	// TierCounts is indexed by Recommendation value.
	TierCounts       [4]int `json:"tier_counts"`
	TotalMonthlyCost Money  `json:"total_monthly_cost"`
}

// CountFor returns the number of services classified at the given tier.
func (s PortfolioSummary) CountFor(tier Recommendation) int {
	if tier < 0 || int(tier) >= len(s.TierCounts) {
		return 0
	}
	return s.TierCounts[tier]
}
