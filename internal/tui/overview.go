package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stackshift/internal/format"
	"stackshift/internal/model"
)

// renderOverview renders the 7-stat overview bar.
// Wide terminals (>= 80 cols): all 7 cards in a single horizontal row.
// Narrow terminals (< 80 cols): cards stacked in rows of 2 (4 rows: 2+2+2+1).
// Returns empty string if no portfolio has been loaded yet.
func renderOverview(app *App) string {
	if app.portfolio == nil {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}

	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		// 2 cards per row: split width evenly between 2 cards.
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 14) / 7
		if cardWidth < 8 {
			cardWidth = 8
		}
	}

	// Mini bar inner width: card width minus padding (1 char each side).
	barWidth := cardWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	s := app.summary

	// Card 1: average score — tier-colored background, with a mini bar
	// against the 100-point ceiling. In watch mode with enough refreshes
	// behind us, the bar gives way to the score trend sparkline.
	avg := s.AverageScore
	avgTier := tierForScore(int(avg + 0.5))
	var avgGraph string
	if app.history != nil && app.history.Len() >= 2 {
		avgGraph = RenderSparkline(app.history.Scores(), barWidth, colorDark)
	} else {
		avgGraph = renderMiniBar(avg, barWidth)
	}
	card1 := StyleOverviewCard.
		Background(tierColor(avgTier)).
		Foreground(colorDark).
		Bold(true).
		Width(cardWidth).
		Render(fmt.Sprintf("%.1f", avg) + "\n" + avgGraph + "\nAvg Score")

	// Card 2: service count — blue foreground.
	card2 := StyleOverviewCard.
		Foreground(colorBlue).
		Width(cardWidth).
		Render(fmt.Sprintf("%d", s.ServiceCount) + "\nServices")

	// Cards 3-6: tier counts, most urgent first, each in its tier color.
	card3 := tierCountCard(model.MigrateUrgently, s, cardWidth)
	card4 := tierCountCard(model.MigrateWithPlan, s, cardWidth)
	card5 := tierCountCard(model.HybridApproach, s, cardWidth)
	card6 := tierCountCard(model.StayOnCurrentStack, s, cardWidth)

	// Card 7: monthly spend across the counted services.
	card7 := StyleOverviewCard.
		Foreground(colorPurple).
		Width(cardWidth).
		Render(format.FormatMoney(s.TotalMonthlyCost) + "\nMonthly Spend")

	var bar string
	if narrowMode {
		// Arrange 7 cards in rows of 2 (4 rows: 2+2+2+1).
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, card1, card2)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, card3, card4)
		row3 := lipgloss.JoinHorizontal(lipgloss.Top, card5, card6)
		bar = lipgloss.JoinVertical(lipgloss.Left, row1, row2, row3, card7)
	} else {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, card1, card2, card3, card4, card5, card6, card7)
	}

	if n := len(app.excluded); n > 0 {
		note := fmt.Sprintf("  %d service(s) excluded from summary (x to restore)", n)
		bar = lipgloss.JoinVertical(lipgloss.Left, bar, StyleDim.Render(note))
	}
	return bar
}

// tierCountCard renders one tier-count overview card.
func tierCountCard(tier model.Recommendation, s model.PortfolioSummary, cardWidth int) string {
	return StyleOverviewCard.
		Foreground(tierColor(tier)).
		Width(cardWidth).
		Render(fmt.Sprintf("%d", s.CountFor(tier)) + "\n" + tierCardLabel(tier))
}

// tierCardLabel returns the short card caption for a tier.
func tierCardLabel(tier model.Recommendation) string {
	switch tier {
	case model.MigrateUrgently:
		return "Urgent"
	case model.MigrateWithPlan:
		return "Plan"
	case model.HybridApproach:
		return "Hybrid"
	case model.StayOnCurrentStack:
		return "Stay"
	default:
		return "?"
	}
}

// renderMiniBar renders a mini progress bar using Unicode block characters.
// Fills proportionally using "█" (U+2588) for filled and "░" (U+2591) for empty cells.
func renderMiniBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
