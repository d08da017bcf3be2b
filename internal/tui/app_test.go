package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackshift/internal/model"
)

// makeFixturePortfolio returns a minimal two-service portfolio.
func makeFixturePortfolio() *model.Portfolio {
	return &model.Portfolio{
		Name:      "storefront",
		FetchedAt: time.Now(),
		Services: []model.ServiceMetrics{
			{Name: "checkout", RequestsPerSecond: 1200, MonthlyInfraCost: money("8400"), P99LatencyMs: 45, TeamSize: 4, DeploysPerDay: 2},
			{Name: "billing", RequestsPerSecond: 40, MonthlyInfraCost: money("2300"), P99LatencyMs: 150, TeamSize: 6, DeploysPerDay: 1},
		},
	}
}

// makeFixtureMsg builds a PortfolioMsg with pre-evaluated assessments.
func makeFixtureMsg(p *model.Portfolio) PortfolioMsg {
	return PortfolioMsg{
		Portfolio: p,
		Assessments: []model.Assessment{
			{Service: p.Services[0], Total: 70, Tier: model.MigrateWithPlan},
			{Service: p.Services[1], Total: 30, Tier: model.StayOnCurrentStack},
		},
	}
}

func TestApp_PortfolioMsgUpdatesState(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	require.Nil(t, app.portfolio)
	require.Equal(t, 0, app.consecutiveFails)

	p := makeFixturePortfolio()
	msg := makeFixtureMsg(p)

	newModel, cmd := app.Update(msg)
	updated := newModel.(*App)

	assert.Equal(t, p, updated.portfolio)
	assert.Equal(t, msg.Assessments, updated.assessments)
	assert.False(t, updated.fetching)
	assert.Equal(t, 0, updated.consecutiveFails)
	assert.Nil(t, updated.lastError)
	assert.Equal(t, stateConnected, updated.connState)
	assert.Equal(t, 2, updated.summary.ServiceCount)
	assert.InDelta(t, 50.0, updated.summary.AverageScore, 0.001)
	assert.Equal(t, p.FetchedAt, updated.lastUpdated)
	assert.Equal(t, 1, updated.history.Len())
	assert.Len(t, updated.serviceTable.displayRows, 2)
	require.NotNil(t, cmd, "watch mode schedules the next tick")
}

func TestApp_NoTickWithoutWatch(t *testing.T) {
	app := NewApp(nil, 0, nil)

	newModel, cmd := app.Update(makeFixtureMsg(makeFixturePortfolio()))
	updated := newModel.(*App)

	assert.False(t, updated.fetching)
	assert.Nil(t, cmd, "one-shot mode schedules no tick")
}

func TestApp_FetchErrorIncreasesFails(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)

	err1 := errors.New("connection refused")
	newModel, cmd1 := app.Update(FetchErrorMsg{Err: err1})
	app = newModel.(*App)

	assert.Equal(t, 1, app.consecutiveFails)
	assert.Equal(t, err1, app.lastError)
	assert.Equal(t, stateDisconnected, app.connState)
	require.NotNil(t, cmd1)

	newModel, cmd2 := app.Update(FetchErrorMsg{Err: err1})
	app = newModel.(*App)

	assert.Equal(t, 2, app.consecutiveFails)
	require.NotNil(t, cmd2)
}

func TestApp_FetchErrorNoRetryWithoutWatch(t *testing.T) {
	app := NewApp(nil, 0, nil)

	newModel, cmd := app.Update(FetchErrorMsg{Err: errors.New("timeout")})
	app = newModel.(*App)

	assert.Equal(t, 1, app.consecutiveFails)
	assert.Nil(t, cmd, "one-shot mode does not auto-retry")
}

func TestApp_FetchErrorResetsOnSuccess(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)

	// Simulate two failures
	newModel, _ := app.Update(FetchErrorMsg{Err: errors.New("timeout")})
	newModel, _ = newModel.(*App).Update(FetchErrorMsg{Err: errors.New("timeout")})
	app = newModel.(*App)
	require.Equal(t, 2, app.consecutiveFails)

	// Now a successful fetch resets the counter
	newModel, _ = app.Update(makeFixtureMsg(makeFixturePortfolio()))
	app = newModel.(*App)

	assert.Equal(t, 0, app.consecutiveFails)
	assert.Nil(t, app.lastError)
	assert.Equal(t, stateConnected, app.connState)
}

func TestApp_WindowSizeStored(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)

	newModel, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := newModel.(*App)

	assert.Equal(t, 120, updated.width)
	assert.Equal(t, 40, updated.height)
	assert.Nil(t, cmd)
}

func TestApp_QuitKey(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	// tea.Quit is a function — we verify a non-nil command is returned.
	require.NotNil(t, cmd)
	// Execute the command; it should return tea.QuitMsg.
	result := cmd()
	_, isQuit := result.(tea.QuitMsg)
	assert.True(t, isQuit, "expected tea.QuitMsg, got %T", result)
}

func TestApp_RefreshKey(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	app.fetching = false

	newModel, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	updated := newModel.(*App)

	require.NotNil(t, cmd, "expected fetch command returned for 'r' key")
	assert.True(t, updated.fetching)
}

func TestApp_RefreshKeyNoopWhileFetching(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	app.fetching = true

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
}

func TestApp_HelpToggle(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	require.False(t, app.showHelp)

	newModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app = newModel.(*App)
	assert.True(t, app.showHelp)

	newModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app = newModel.(*App)
	assert.False(t, app.showHelp)
}

func TestApp_TabSwitchesPane(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	require.Equal(t, paneServices, app.activePane)
	require.True(t, app.serviceTable.focused)
	require.False(t, app.roiTable.focused)

	newModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = newModel.(*App)
	assert.Equal(t, paneROI, app.activePane)
	assert.False(t, app.serviceTable.focused)
	assert.True(t, app.roiTable.focused)

	newModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = newModel.(*App)
	assert.Equal(t, paneServices, app.activePane)
	assert.True(t, app.serviceTable.focused)
}

func TestApp_ExcludeToggleAdjustsSummary(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	newModel, _ := app.Update(makeFixtureMsg(makeFixturePortfolio()))
	app = newModel.(*App)
	require.Equal(t, 2, app.summary.ServiceCount)

	// Cursor starts on the top row: checkout (highest score).
	x := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}

	newModel, _ = app.Update(x)
	app = newModel.(*App)
	assert.True(t, app.excluded["checkout"])
	assert.Equal(t, 1, app.summary.ServiceCount)
	assert.InDelta(t, 30.0, app.summary.AverageScore, 0.001)

	// Toggle back.
	newModel, _ = app.Update(x)
	app = newModel.(*App)
	assert.False(t, app.excluded["checkout"])
	assert.Equal(t, 2, app.summary.ServiceCount)
	assert.InDelta(t, 50.0, app.summary.AverageScore, 0.001)
}

func TestApp_EnterOpensDetailEscCloses(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	newModel, _ := app.Update(makeFixtureMsg(makeFixturePortfolio()))
	app = newModel.(*App)

	newModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = newModel.(*App)
	assert.True(t, app.detailOpen)
	assert.Equal(t, "checkout", app.detailName, "detail opens on the cursored row")

	newModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	app = newModel.(*App)
	assert.False(t, app.detailOpen)
	assert.Equal(t, "", app.detailName)
}

func TestApp_ExcludedPrunedOnRefresh(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	newModel, _ := app.Update(makeFixtureMsg(makeFixturePortfolio()))
	app = newModel.(*App)

	newModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	app = newModel.(*App)
	require.True(t, app.excluded["checkout"])

	// Next refresh no longer contains checkout; the stale exclusion is dropped.
	p2 := &model.Portfolio{
		Name:      "storefront",
		FetchedAt: time.Now(),
		Services: []model.ServiceMetrics{
			{Name: "billing", RequestsPerSecond: 40, MonthlyInfraCost: money("2300"), P99LatencyMs: 150, TeamSize: 6, DeploysPerDay: 1},
		},
	}
	msg2 := PortfolioMsg{
		Portfolio: p2,
		Assessments: []model.Assessment{
			{Service: p2.Services[0], Total: 30, Tier: model.StayOnCurrentStack},
		},
	}
	newModel, _ = app.Update(msg2)
	app = newModel.(*App)

	assert.Empty(t, app.excluded)
	assert.Equal(t, 1, app.summary.ServiceCount)
}

func TestBackoffDuration(t *testing.T) {
	cases := []struct {
		fails    int
		expected time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 32 * time.Second},
		{6, 60 * time.Second},
		{10, 60 * time.Second},
	}
	for _, tc := range cases {
		got := backoffDuration(tc.fails)
		assert.Equal(t, tc.expected, got, "fails=%d", tc.fails)
	}
}

func TestRenderMiniBar(t *testing.T) {
	cases := []struct {
		percent  float64
		width    int
		wantFill int
	}{
		{0, 10, 0},
		{100, 10, 10},
		{50, 10, 5},
		{25, 8, 2},
		{75, 8, 6},
	}
	for _, tc := range cases {
		result := renderMiniBar(tc.percent, tc.width)
		assert.Len(t, []rune(result), tc.width, "total bar width percent=%v", tc.percent)
		filledCount := strings.Count(result, "█")
		assert.Equal(t, tc.wantFill, filledCount, "filled count percent=%v width=%v", tc.percent, tc.width)
	}
	// Zero width returns empty string.
	assert.Equal(t, "", renderMiniBar(50, 0))
}

func TestApp_SparklineNonEmptyAfterRefreshes(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)

	// Three refreshes, each recording a trend point.
	for i := 0; i < 3; i++ {
		newModel, _ := app.Update(makeFixtureMsg(makeFixturePortfolio()))
		app = newModel.(*App)
	}
	require.Equal(t, 3, app.history.Len())

	values := app.history.Scores()
	require.Len(t, values, 3)

	sparkline := stripANSI(RenderSparkline(values, 10, testColor))
	assert.NotEqual(t, strings.Repeat(" ", 10), sparkline, "sparkline should contain non-space chars after 3 refreshes")
	assert.Contains(t, sparkline, "█", "sparkline should contain a max-value char")
}

func TestRenderOverview_NilPortfolio(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	app.width = 120
	assert.Equal(t, "", renderOverview(app))
}

func TestRenderOverview_WithPortfolio(t *testing.T) {
	app := NewApp(nil, 10*time.Second, nil)
	app.width = 120

	newModel, _ := app.Update(makeFixtureMsg(makeFixturePortfolio()))
	app = newModel.(*App)

	result := renderOverview(app)
	assert.NotEmpty(t, result)
	stripped := stripANSI(result)
	assert.Contains(t, stripped, "50.0")
	assert.Contains(t, stripped, "Avg Score")
	assert.Contains(t, stripped, "Services")
	assert.Contains(t, stripped, "Monthly Spend")
	assert.Contains(t, stripped, "$10,700")
}

func TestFetchCmd_Success(t *testing.T) {
	src := &mockSource{}

	msg := fetchCmd(src, 0)()
	pm, ok := msg.(PortfolioMsg)
	require.True(t, ok, "expected PortfolioMsg, got %T", msg)
	assert.Equal(t, "storefront", pm.Portfolio.Name)
	require.Len(t, pm.Assessments, 2)
	for _, a := range pm.Assessments {
		assert.GreaterOrEqual(t, a.Total, 0)
		assert.LessOrEqual(t, a.Total, 100)
	}
}

func TestFetchCmd_FetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	src := &mockSource{
		FetchFn: func(ctx context.Context) (*model.Portfolio, error) {
			return nil, fetchErr
		},
	}

	msg := fetchCmd(src, 0)()
	em, ok := msg.(FetchErrorMsg)
	require.True(t, ok, "expected FetchErrorMsg, got %T", msg)
	assert.ErrorIs(t, em.Err, fetchErr)
}

func TestFetchCmd_InvalidRecord(t *testing.T) {
	src := &mockSource{
		FetchFn: func(ctx context.Context) (*model.Portfolio, error) {
			return &model.Portfolio{
				Services: []model.ServiceMetrics{
					{Name: "broken", RequestsPerSecond: 10, MonthlyInfraCost: money("100"), TeamSize: 0},
				},
			}, nil
		},
	}

	msg := fetchCmd(src, 0)()
	em, ok := msg.(FetchErrorMsg)
	require.True(t, ok, "expected FetchErrorMsg, got %T", msg)
	assert.ErrorIs(t, em.Err, model.ErrInvalidInput)
	assert.Contains(t, em.Err.Error(), "broken", "error should name the failing service")
}

// stripANSI removes ANSI escape sequences for plain-text content assertions.
// Handles all CSI sequences (not just SGR m-terminated ones).
func stripANSI(s string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			// CSI final bytes are in range 0x40–0x7E (@, A-Z, [, \, ], ^, _, `, a-z, {, |, }, ~)
			if r >= 0x40 && r <= 0x7E {
				inEscape = false
			}
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
