package engine

import (
	"fmt"

	"stackshift/internal/model"
)

// Classify selects the migration tier for a total score. Bands are fixed and
// non-overlapping: [0,30] stay, [31,50] hybrid, [51,70] migrate with a plan,
// [71,100] migrate urgently.
//
// Scores produced by Score always land in [0,100]; anything outside is
// rejected with ErrInvalidInput rather than clamped, since it can only mean
// a caller bug.
func Classify(total int) (model.Recommendation, error) {
	if total < 0 || total > 100 {
		return model.StayOnCurrentStack, fmt.Errorf("%w: total score must be within [0,100], got %d", model.ErrInvalidInput, total)
	}
	switch {
	case total >= 71:
		return model.MigrateUrgently, nil
	case total >= 51:
		return model.MigrateWithPlan, nil
	case total >= 31:
		return model.HybridApproach, nil
	default:
		return model.StayOnCurrentStack, nil
	}
}
