package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortfolioValidate_Empty(t *testing.T) {
	p := Portfolio{Name: "empty"}
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func TestPortfolioValidate_NamesBadService(t *testing.T) {
	p := Portfolio{
		Services: []ServiceMetrics{
			validMetrics(),
			{Name: "billing", TeamSize: -1},
		},
	}
	err := p.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `service "billing"`)
}

func TestPortfolioValidate_OK(t *testing.T) {
	p := Portfolio{Services: []ServiceMetrics{validMetrics()}}
	assert.NoError(t, p.Validate())
}

func TestSummaryCountFor(t *testing.T) {
	s := PortfolioSummary{TierCounts: [4]int{3, 1, 4, 2}}
	assert.Equal(t, 3, s.CountFor(StayOnCurrentStack))
	assert.Equal(t, 1, s.CountFor(HybridApproach))
	assert.Equal(t, 4, s.CountFor(MigrateWithPlan))
	assert.Equal(t, 2, s.CountFor(MigrateUrgently))
	assert.Equal(t, 0, s.CountFor(Recommendation(12)))
	assert.Equal(t, 0, s.CountFor(Recommendation(-1)))
}
