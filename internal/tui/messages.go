package tui

import (
	"time"

	"stackshift/internal/model"
)

// PortfolioMsg delivers a successful fetch and evaluation to the TUI.
type PortfolioMsg struct {
	Portfolio   *model.Portfolio
	Assessments []model.Assessment
}

// FetchErrorMsg signals a fetch or evaluation failure.
type FetchErrorMsg struct{ Err error }

// TickMsg triggers the next scheduled refresh.
type TickMsg time.Time

// CountdownTickMsg redraws the disconnected-state retry countdown once a
// second. Gen guards against stale ticks from a superseded backoff cycle.
type CountdownTickMsg struct{ Gen int }
