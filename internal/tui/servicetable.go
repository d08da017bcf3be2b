package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"stackshift/internal/format"
	"stackshift/internal/model"
)

// ServiceTableModel is a sortable, paginated, searchable table of service
// assessments.
type ServiceTableModel struct {
	tableModel
	allRows     []model.Assessment // unfiltered source data
	displayRows []model.Assessment // after filter + sort applied
}

// NewServiceTable returns a ServiceTableModel with 8-column layout and
// default sort by Score (col 6) descending.
func NewServiceTable() ServiceTableModel {
	cols := []columnDef{
		{Title: "Service", Width: 22, SortDesc: false},
		{Title: "RPS", Width: 10, SortDesc: true},
		{Title: "Cost/mo", Width: 11, SortDesc: true},
		{Title: "P99", Width: 9, SortDesc: true},
		{Title: "Team", Width: 5, SortDesc: true},
		{Title: "Dep/d", Width: 6, SortDesc: true},
		{Title: "Score", Width: 7, SortDesc: true},
		{Title: "Tier", Width: 20, SortDesc: true},
	}
	m := ServiceTableModel{
		tableModel: newTableModel(cols),
	}
	m.sortCol = 6 // Score
	m.sortDesc = true
	return m
}

// SetData applies the current search filter and sort to rows, storing the
// result as displayRows ready for rendering.
func (m *ServiceTableModel) SetData(rows []model.Assessment) {
	m.allRows = rows
	filtered := filterAssessments(m.allRows, m.search)
	m.displayRows = sortAssessments(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
}

// Update handles keyboard events for sorting, pagination, and search. It
// delegates to the embedded tableModel and re-applies filter/sort when the
// sort column, direction, or search term changes.
func (m ServiceTableModel) Update(msg tea.Msg) (ServiceTableModel, tea.Cmd) {
	prevSort := m.sortCol
	prevDesc := m.sortDesc
	prevSearch := m.search

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		filtered := filterAssessments(m.allRows, m.search)
		m.displayRows = sortAssessments(filtered, m.sortCol, m.sortDesc)
	}
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
	return m, cmd
}

// cursorRow returns the assessment under the cursor, if any.
func (m *ServiceTableModel) cursorRow() (model.Assessment, bool) {
	pageIdx := m.pageIndices()
	if m.cursor < 0 || m.cursor >= len(pageIdx) {
		return model.Assessment{}, false
	}
	return m.displayRows[pageIdx[m.cursor]], true
}

func (m *ServiceTableModel) pageIndices() []int {
	allIdx := make([]int, len(m.displayRows))
	for i := range m.displayRows {
		allIdx[i] = i
	}
	return currentPageIndices(allIdx, m.page, m.pageSize)
}

// renderTable renders the complete "Services" section: a header bar followed
// by the lipgloss table body for the current page, and a detail line for the
// selected row when focused.
func (m *ServiceTableModel) renderTable(app *App) string {
	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderHeader("Services", m.page+1, pc, m.searching, m.search)

	// Compute proportional column widths for the current terminal width.
	// Padding headers to these widths guides the table's natural column
	// layout toward our preferred proportions rather than the library's
	// even distribution.
	var colWidths []int
	if app != nil && app.width > 0 {
		colWidths = columnWidths(app.width, m.columns)
	}

	headers := sortArrowHeaders(m.columns, m.sortCol, m.sortDesc)
	padHeaders(headers, colWidths)

	pageIdx := m.pageIndices()
	if len(pageIdx) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (no services)"))
	}

	pageRows := make([]model.Assessment, len(pageIdx))
	for i, idx := range pageIdx {
		pageRows[i] = m.displayRows[idx]
	}

	sortCol := m.sortCol
	focused := m.focused
	cursor := m.cursor
	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle()
			if focused && row == cursor {
				base = base.Background(colorSelectedBg)
			} else if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if row >= 0 && row < len(pageRows) {
				if app != nil && app.excluded[pageRows[row].Service.DisplayName()] {
					return base.Foreground(colorGray).Strikethrough(true)
				}
				if col == 7 {
					return base.Foreground(tierColor(pageRows[row].Tier))
				}
			}
			switch col {
			case 1:
				return base.Foreground(colorGreen)
			case 2:
				return base.Foreground(colorCyan)
			case 3:
				return base.Foreground(colorPurple)
			case 5:
				return base.Foreground(colorOrange)
			case 6:
				return base.Foreground(colorBlue)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	if app != nil && app.width > 0 {
		t = t.Width(app.width)
	}

	for _, r := range pageRows {
		cells := make([]string, len(m.columns))
		for col := range m.columns {
			cells[col] = serviceCellValue(r, col)
		}
		// Prevent cell wrapping: truncate name to allocated column width.
		if len(colWidths) > 0 && colWidths[0] > 0 {
			cells[0] = truncateName(cells[0], colWidths[0])
		}
		t = t.Row(cells...)
	}

	// Detail line: full untruncated name + tier for the selected row when focused.
	var detailLine string
	if m.focused && m.cursor < len(pageRows) {
		r := pageRows[m.cursor]
		detailLine = StyleDim.Render("  " + sanitize(r.Service.DisplayName()) + "  " + r.Tier.String())
	}
	if detailLine != "" {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, t.String(), detailLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, hdr, t.String())
}

// renderHeader renders the title bar with search/sort/page hints.
// When searching is true, the live textinput view is shown instead of hints.
// When searchTerm is non-empty, the active filter is shown alongside the page info.
func (m *ServiceTableModel) renderHeader(title string, page, pageCount int, searching bool, searchTerm string) string {
	if m.focused {
		title = "▸ " + title
	}
	pageInfo := fmt.Sprintf("Page %d/%d", page, pageCount)

	var right string
	switch {
	case searching:
		right = "Filter: " + m.input.View()
	case searchTerm != "":
		right = fmt.Sprintf("filter=%q  %s", searchTerm, pageInfo)
	default:
		right = fmt.Sprintf("[/: filter]  [1-9: sort]  [←→: page]  %s", pageInfo)
	}

	return StyleDim.Render(title + "  " + right)
}

// serviceCellValue formats an assessment field for a given column index.
func serviceCellValue(a model.Assessment, col int) string {
	switch col {
	case 0:
		return sanitize(a.Service.DisplayName())
	case 1:
		return format.FormatRate(a.Service.RequestsPerSecond)
	case 2:
		return format.FormatMoney(a.Service.MonthlyInfraCost)
	case 3:
		return format.FormatLatency(a.Service.P99LatencyMs)
	case 4:
		return strconv.Itoa(a.Service.TeamSize)
	case 5:
		return strconv.FormatFloat(a.Service.DeploysPerDay, 'f', -1, 64)
	case 6:
		return format.FormatScore(a.Total)
	case 7:
		return a.Tier.String()
	default:
		return ""
	}
}

// sortArrowHeaders builds the column header strings, appending a direction
// arrow to the active sort column.
func sortArrowHeaders(cols []columnDef, sortCol int, sortDesc bool) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		if i == sortCol {
			arrow := "↓"
			if !sortDesc {
				arrow = "↑"
			}
			headers[i] = c.Title + arrow
		} else {
			headers[i] = c.Title
		}
	}
	return headers
}

// padHeaders pads headers to target column widths so the table allocates
// proportional space. No-op when widths were not computed.
func padHeaders(headers []string, colWidths []int) {
	if len(colWidths) != len(headers) {
		return
	}
	for i, h := range headers {
		runes := []rune(h)
		if len(runes) < colWidths[i] {
			headers[i] = h + strings.Repeat(" ", colWidths[i]-len(runes))
		}
	}
}
