package tui

import (
	"github.com/charmbracelet/lipgloss"

	"stackshift/internal/engine"
	"stackshift/internal/model"
)

// tierColor returns the accent color for a recommendation tier. The scale
// runs green (stay) through red (urgent) so the dashboard reads like a
// heat map.
func tierColor(tier model.Recommendation) lipgloss.Color {
	switch tier {
	case model.StayOnCurrentStack:
		return colorGreen
	case model.HybridApproach:
		return colorCyan
	case model.MigrateWithPlan:
		return colorYellow
	case model.MigrateUrgently:
		return colorRed
	default:
		return colorGray
	}
}

// tierStyle returns the bold badge style for a recommendation tier.
func tierStyle(tier model.Recommendation) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(tierColor(tier))
}

// tierForScore maps a total score onto its tier band, clamping out-of-range
// values so display code never fails on rounded aggregates.
func tierForScore(total int) model.Recommendation {
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	tier, err := engine.Classify(total)
	if err != nil {
		return model.StayOnCurrentStack
	}
	return tier
}
