package model

import "encoding/json"

// Recommendation is the migration urgency tier selected from the total
// score. Tiers are ordered: a larger value always means stronger migration
// pressure, so tiers compare with < and >.
type Recommendation int

const (
	StayOnCurrentStack Recommendation = iota
	HybridApproach
	MigrateWithPlan
	MigrateUrgently
)

// String returns the human-readable tier label.
func (r Recommendation) String() string {
	switch r {
	case StayOnCurrentStack:
		return "Stay on current stack"
	case HybridApproach:
		return "Hybrid approach"
	case MigrateWithPlan:
		return "Migrate with a plan"
	case MigrateUrgently:
		return "Migrate urgently"
	default:
		return "Unknown"
	}
}

// Short returns a compact label for table cells.
func (r Recommendation) Short() string {
	switch r {
	case StayOnCurrentStack:
		return "STAY"
	case HybridApproach:
		return "HYBRID"
	case MigrateWithPlan:
		return "PLAN"
	case MigrateUrgently:
		return "URGENT"
	default:
		return "?"
	}
}

// MarshalJSON emits the human label so exported assessments read without a
// tier-number legend.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}
