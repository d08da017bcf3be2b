package engine

import (
	"stackshift/internal/model"
)

// smallTeamMax is the largest team still considered small enough to score
// team-risk points: tiny teams feel stack friction hardest.
const smallTeamMax = 5

// Score maps a validated metrics record to per-category points. Values below
// a category's lowest band score zero and values above its highest band score
// the category ceiling, so a valid record always totals within [0,100].
// Out-of-domain records are rejected with ErrInvalidInput.
func Score(m model.ServiceMetrics) (model.ScoreBreakdown, error) {
	if err := m.Validate(); err != nil {
		return model.ScoreBreakdown{}, err
	}
	return model.ScoreBreakdown{
		Scale:       scalePoints(m.RequestsPerSecond),
		Cost:        costPoints(m.MonthlyInfraCost),
		Performance: performancePoints(m),
		Operational: operationalPoints(m),
		Team:        teamPoints(m),
	}, nil
}

// scalePoints bands the sustained request rate. Bands are half-open with the
// boundary belonging to the higher band.
func scalePoints(rps float64) int {
	switch {
	case rps >= 10_000:
		return 30
	case rps >= 1_000:
		return 20
	case rps >= 100:
		return 10
	case rps >= 10:
		return 5
	default:
		return 0
	}
}

// costPoints bands the monthly infrastructure spend (USD/month). Higher
// spend means more to recover, so it scores more migration points.
func costPoints(cost model.Money) int {
	usd := cost.InexactFloat64()
	switch {
	case usd >= 50_000:
		return 25
	case usd >= 15_000:
		return 20
	case usd >= 5_000:
		return 15
	case usd >= 2_000:
		return 10
	case usd >= 500:
		return 5
	default:
		return 0
	}
}

// performancePoints awards base points for the tightest satisfied p99 budget
// plus flat bonuses for the concurrency and real-time flags, capped at the
// category ceiling.
func performancePoints(m model.ServiceMetrics) int {
	points := 0
	switch {
	case m.P99LatencyMs < 20:
		points = 20
	case m.P99LatencyMs < 50:
		points = 15
	case m.P99LatencyMs < 100:
		points = 10
	}
	if m.HighConcurrency {
		points += 5
	}
	if m.RealTime {
		points += 5
	}
	return min(points, model.MaxPerformancePoints)
}

// operationalPoints adds flat points per independently-observed pain
// condition, capped at the category ceiling.
func operationalPoints(m model.ServiceMetrics) int {
	points := 0
	if m.GCPressure {
		points += 5
	}
	if m.ColdStarts {
		points += 5
	}
	if m.DeploymentFriction {
		points += 3
	}
	if m.AutoscaleLag {
		points += 2
	}
	return min(points, model.MaxOperationalPoints)
}

// teamPoints adds flat points per team-risk condition. The small-team
// condition is derived from TeamSize rather than flagged in the record.
func teamPoints(m model.ServiceMetrics) int {
	points := 0
	if m.TeamSize <= smallTeamMax {
		points += 5
	}
	if m.HighTurnover {
		points += 3
	}
	if m.SlowOnboarding {
		points += 2
	}
	return min(points, model.MaxTeamPoints)
}
