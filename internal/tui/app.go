package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stackshift/internal/engine"
	"stackshift/internal/model"
	"stackshift/internal/source"
)

type connState int

const (
	stateConnected connState = iota
	stateDisconnected
)

type pane int

const (
	paneServices pane = iota
	paneROI
)

// App is the root bubbletea model for the interactive dashboard. It owns the
// fetch loop, the evaluated portfolio, and the two tables.
type App struct {
	src           source.Source
	watchInterval time.Duration
	logger        *zap.Logger

	fetching    bool
	portfolio   *model.Portfolio
	assessments []model.Assessment
	summary     model.PortfolioSummary
	history     *model.TrendHistory

	connState        connState
	consecutiveFails int
	lastError        error
	lastUpdated      time.Time
	nextRetryAt      time.Time
	countdownGen     int

	width  int
	height int

	showHelp   bool
	activePane pane
	detailOpen bool
	detailName string
	excluded   map[string]bool

	serviceTable ServiceTableModel
	roiTable     ROITableModel
}

// NewApp builds the dashboard model. A zero watch interval disables the
// periodic refresh; the portfolio is still fetched once on startup and on
// demand with r.
func NewApp(src source.Source, watchInterval time.Duration, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		src:           src,
		watchInterval: watchInterval,
		logger:        logger,
		fetching:      true,
		connState:     stateDisconnected,
		history:       model.NewTrendHistory(0),
		excluded:      make(map[string]bool),
		serviceTable:  NewServiceTable(),
		roiTable:      NewROITable(),
	}
	app.serviceTable.focused = true
	return app
}

func (app *App) Init() tea.Cmd {
	return fetchCmd(app.src, app.watchInterval)
}

// fetchCmd fetches the portfolio and evaluates every service off the UI
// goroutine. The deadline is derived from the watch interval so a slow
// source cannot overlap the next tick.
func fetchCmd(src source.Source, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		timeout := 10 * time.Second
		if interval > 0 {
			timeout = interval - 500*time.Millisecond
			if timeout < 500*time.Millisecond {
				timeout = 500 * time.Millisecond
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := src.Fetch(ctx)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		assessments, err := engine.EvaluateAll(ctx, p)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return PortfolioMsg{Portfolio: p, Assessments: assessments}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// backoffDuration returns the retry delay after consecutive failures,
// doubling from 1s up to a 60s cap.
func backoffDuration(fails int) time.Duration {
	if fails <= 0 {
		return time.Second
	}
	if fails >= 6 {
		return 60 * time.Second
	}
	return time.Duration(1<<fails) * time.Second
}

func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		return app, nil

	case PortfolioMsg:
		app.fetching = false
		app.portfolio = msg.Portfolio
		app.assessments = msg.Assessments
		app.pruneExcluded()
		app.summary = app.summarize()
		app.serviceTable.SetData(app.assessments)
		app.roiTable.SetData(roiRows(app.assessments))
		app.history.Push(model.TrendPoint{
			Timestamp:    msg.Portfolio.FetchedAt,
			AverageScore: app.summary.AverageScore,
			MonthlySpend: app.summary.TotalMonthlyCost.InexactFloat64(),
		})
		app.consecutiveFails = 0
		app.lastError = nil
		app.connState = stateConnected
		app.lastUpdated = msg.Portfolio.FetchedAt
		app.nextRetryAt = time.Time{}
		app.logger.Debug("portfolio evaluated",
			zap.Int("services", len(msg.Assessments)),
			zap.Float64("avg_score", app.summary.AverageScore))
		if app.watchInterval > 0 {
			return app, tickCmd(app.watchInterval)
		}
		return app, nil

	case FetchErrorMsg:
		app.fetching = false
		app.consecutiveFails++
		app.lastError = msg.Err
		app.connState = stateDisconnected
		app.logger.Warn("fetch failed",
			zap.Error(msg.Err),
			zap.Int("consecutive_fails", app.consecutiveFails))
		if app.watchInterval > 0 {
			backoff := backoffDuration(app.consecutiveFails)
			app.nextRetryAt = time.Now().Add(backoff)
			app.countdownGen++
			gen := app.countdownGen
			return app, tea.Batch(
				tea.Tick(backoff, func(t time.Time) tea.Msg {
					return TickMsg(t)
				}),
				tea.Tick(time.Second, func(time.Time) tea.Msg {
					return CountdownTickMsg{Gen: gen}
				}),
			)
		}
		return app, nil

	case TickMsg:
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.src, app.watchInterval)

	case CountdownTickMsg:
		// Keep the retry countdown ticking while disconnected; drop ticks
		// from superseded backoff cycles.
		if msg.Gen != app.countdownGen || app.connState != stateDisconnected {
			return app, nil
		}
		gen := app.countdownGen
		return app, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return CountdownTickMsg{Gen: gen}
		})

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a filter prompt is open all input belongs to that table.
	if app.focusedSearching() {
		return app, app.routeToFocusedTable(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return app, tea.Quit

	case key.Matches(msg, keys.Refresh):
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.src, app.watchInterval)

	case key.Matches(msg, keys.Help):
		app.showHelp = !app.showHelp
		return app, nil

	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab):
		if app.activePane == paneServices {
			app.activePane = paneROI
		} else {
			app.activePane = paneServices
		}
		app.syncFocus()
		return app, nil

	case key.Matches(msg, keys.Enter):
		if app.detailOpen {
			app.detailOpen = false
			app.detailName = ""
			return app, nil
		}
		if name, ok := app.cursorService(); ok {
			app.detailOpen = true
			app.detailName = name
		}
		return app, nil

	case key.Matches(msg, keys.Escape):
		if app.detailOpen {
			app.detailOpen = false
			app.detailName = ""
			return app, nil
		}
		return app, app.routeToFocusedTable(msg)

	case key.Matches(msg, keys.Exclude):
		if name, ok := app.cursorService(); ok {
			if app.excluded[name] {
				delete(app.excluded, name)
			} else {
				app.excluded[name] = true
			}
			app.summary = app.summarize()
		}
		return app, nil
	}

	return app, app.routeToFocusedTable(msg)
}

func (app *App) View() string {
	sections := []string{renderHeader(app)}

	if app.detailOpen {
		sections = append(sections, renderDetail(app))
	} else {
		if ov := renderOverview(app); ov != "" {
			sections = append(sections, ov)
		}
		sections = append(sections, app.serviceTable.renderTable(app))
		if rt := app.roiTable.renderTable(app); rt != "" {
			sections = append(sections, rt)
		}
	}

	sections = append(sections, renderFooter(app))
	return strings.Join(sections, "\n")
}

// summarize recomputes the portfolio summary, leaving out services the user
// excluded with x.
func (app *App) summarize() model.PortfolioSummary {
	if len(app.excluded) == 0 {
		return engine.Summarize(app.assessments)
	}
	kept := make([]model.Assessment, 0, len(app.assessments))
	for _, a := range app.assessments {
		if !app.excluded[a.Service.DisplayName()] {
			kept = append(kept, a)
		}
	}
	return engine.Summarize(kept)
}

// pruneExcluded drops exclusions for services no longer in the portfolio.
func (app *App) pruneExcluded() {
	if len(app.excluded) == 0 {
		return
	}
	present := make(map[string]bool, len(app.assessments))
	for _, a := range app.assessments {
		present[a.Service.DisplayName()] = true
	}
	for name := range app.excluded {
		if !present[name] {
			delete(app.excluded, name)
		}
	}
}

func (app *App) focusedSearching() bool {
	if app.activePane == paneROI {
		return app.roiTable.searching
	}
	return app.serviceTable.searching
}

func (app *App) routeToFocusedTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if app.activePane == paneROI {
		app.roiTable, cmd = app.roiTable.Update(msg)
	} else {
		app.serviceTable, cmd = app.serviceTable.Update(msg)
	}
	return cmd
}

// cursorService returns the service name under the cursor of the focused
// table.
func (app *App) cursorService() (string, bool) {
	if app.activePane == paneROI {
		if row, ok := app.roiTable.cursorRow(); ok {
			return row.Service.DisplayName(), true
		}
		return "", false
	}
	if row, ok := app.serviceTable.cursorRow(); ok {
		return row.Service.DisplayName(), true
	}
	return "", false
}

func (app *App) findAssessment(name string) *model.Assessment {
	for i := range app.assessments {
		if app.assessments[i].Service.DisplayName() == name {
			return &app.assessments[i]
		}
	}
	return nil
}

func (app *App) syncFocus() {
	app.serviceTable.focused = app.activePane == paneServices
	app.roiTable.focused = app.activePane == paneROI
}
