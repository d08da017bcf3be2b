package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackshift/internal/model"
)

func TestServiceTableSetData_AppliesDefaultSort(t *testing.T) {
	m := NewServiceTable()
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: "alpha"}, Total: 10},
		{Service: model.ServiceMetrics{Name: "gamma"}, Total: 90},
		{Service: model.ServiceMetrics{Name: "beta"}, Total: 50},
	}
	m.SetData(rows)

	require.Len(t, m.displayRows, 3)
	assert.Equal(t, "gamma", m.displayRows[0].Service.Name, "highest score should be first")
	assert.Equal(t, "beta", m.displayRows[1].Service.Name)
	assert.Equal(t, "alpha", m.displayRows[2].Service.Name, "lowest score should be last")
}

func TestServiceTableSearch(t *testing.T) {
	m := NewServiceTable()
	m.search = "pay"
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: "payments-api"}, Total: 80},
		{Service: model.ServiceMetrics{Name: "admin-panel"}, Total: 20},
		{Service: model.ServiceMetrics{Name: "payroll"}, Total: 40},
	}
	m.SetData(rows)

	require.Len(t, m.displayRows, 2, "only matching services should remain after filter")
	assert.Equal(t, "payments-api", m.displayRows[0].Service.Name, "higher score first within filtered set")
	assert.Equal(t, "payroll", m.displayRows[1].Service.Name)
}

func TestServiceTablePagination(t *testing.T) {
	m := NewServiceTable()
	m.SetData(makeAssessments(25))

	assert.Equal(t, 25, len(m.displayRows))
	assert.Equal(t, 3, pageCount(len(m.displayRows), m.pageSize))
}

// TestServiceTableNextPage_ClampsAtLastPage verifies that pressing → past the
// last page does not advance the page counter beyond pageCount-1.
func TestServiceTableNextPage_ClampsAtLastPage(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	m.SetData(makeAssessments(25)) // 3 pages at pageSize=10
	require.Equal(t, 3, pageCount(len(m.displayRows), m.pageSize))

	// Advance to last page.
	nextPage := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = m.Update(nextPage)
	m, _ = m.Update(nextPage)
	assert.Equal(t, 2, m.page, "should be on page 2 (0-indexed last page)")

	// Press → again; must stay at page 2.
	m, _ = m.Update(nextPage)
	assert.Equal(t, 2, m.page, "page must not exceed last valid page index")
}

// TestServiceTableEscape_NoPageReset verifies that pressing Escape when there
// is no active search filter does not reset the page counter.
func TestServiceTableEscape_NoPageReset(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	m.SetData(makeAssessments(25))

	// Navigate to page 1.
	nextPage := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = m.Update(nextPage)
	require.Equal(t, 1, m.page)

	// Press Escape with no active search; page must not reset.
	esc := tea.KeyMsg{Type: tea.KeyEscape}
	m, _ = m.Update(esc)
	assert.Equal(t, 1, m.page, "Escape with no active filter must not reset page")
}

// TestServiceTableSort_NameAscendingByDefault verifies that pressing "1"
// (Service column) sorts ascending on first press.
func TestServiceTableSort_NameAscendingByDefault(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: "zebra"}, Total: 10},
		{Service: model.ServiceMetrics{Name: "alpha"}, Total: 90},
		{Service: model.ServiceMetrics{Name: "mango"}, Total: 50},
	}
	m.SetData(rows)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	require.Len(t, m.displayRows, 3)
	assert.Equal(t, "alpha", m.displayRows[0].Service.Name, "Service column should sort ascending on first press")
	assert.Equal(t, "mango", m.displayRows[1].Service.Name)
	assert.Equal(t, "zebra", m.displayRows[2].Service.Name)
}

func TestServiceTableRender_ContainsServiceName(t *testing.T) {
	m := NewServiceTable()
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: "my-test-service"}, Total: 42, Tier: model.HybridApproach},
	}
	m.SetData(rows)

	out := m.renderTable(nil)
	assert.True(t, strings.Contains(out, "my-test-service"), "rendered output should contain the service name")
}

func TestServiceTableRender_EmptyPlaceholder(t *testing.T) {
	m := NewServiceTable()
	m.SetData(nil)

	out := stripANSI(m.renderTable(nil))
	assert.Contains(t, out, "(no services)")
}

// TestServiceTableDetailLine_FocusedShowsFullName verifies that when the table
// is focused, the rendered output contains the full untruncated service name
// in the detail line below the table body.
func TestServiceTableDetailLine_FocusedShowsFullName(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	longName := "checkout-payments-gateway-v2-legacy"
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: longName}, Total: 42},
	}
	m.SetData(rows)

	out := m.renderTable(nil)
	assert.True(t, strings.Contains(out, longName),
		"detail line should contain the full untruncated service name when focused")
}

// TestServiceTableDetailLine_UnfocusedAbsent verifies that when the table is
// not focused, no detail line is rendered for the selected row.
func TestServiceTableDetailLine_UnfocusedAbsent(t *testing.T) {
	longName := "checkout-payments-gateway-v2-legacy"
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: longName}, Total: 42},
	}

	m := NewServiceTable()
	m.focused = false
	m.SetData(rows)
	outUnfocused := m.renderTable(nil)

	m2 := NewServiceTable()
	m2.focused = true
	m2.SetData(rows)
	outFocused := m2.renderTable(nil)

	// The focused output must be longer (extra detail line).
	assert.Greater(t, len(outFocused), len(outUnfocused),
		"focused table output should be longer than unfocused (has detail line)")
}

// TestServiceTableDetailLine_CursorNonZero verifies that the detail line shows
// the name of the row under the cursor, not always the first row.
func TestServiceTableDetailLine_CursorNonZero(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	rows := []model.Assessment{
		{Service: model.ServiceMetrics{Name: "alpha-service"}, Total: 90},
		{Service: model.ServiceMetrics{Name: "beta-service"}, Total: 50},
		{Service: model.ServiceMetrics{Name: "gamma-service"}, Total: 10},
	}
	m.SetData(rows)
	// After SetData, default sort is by score desc: alpha, beta, gamma.

	down := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = m.Update(down)
	m, _ = m.Update(down)
	// cursor is now at row 2 → "gamma-service"

	out := m.renderTable(nil)
	assert.True(t, strings.Contains(out, "gamma-service"),
		"detail line should show the name of the row at cursor position 2")
}

func TestServiceTableCursorRow(t *testing.T) {
	m := NewServiceTable()
	m.focused = true
	m.SetData([]model.Assessment{
		{Service: model.ServiceMetrics{Name: "alpha"}, Total: 90},
		{Service: model.ServiceMetrics{Name: "beta"}, Total: 50},
	})

	row, ok := m.cursorRow()
	require.True(t, ok)
	assert.Equal(t, "alpha", row.Service.Name)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	row, ok = m.cursorRow()
	require.True(t, ok)
	assert.Equal(t, "beta", row.Service.Name)
}

func TestServiceTableCursorRow_Empty(t *testing.T) {
	m := NewServiceTable()
	m.SetData(nil)

	_, ok := m.cursorRow()
	assert.False(t, ok)
}
