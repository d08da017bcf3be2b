package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"stackshift/internal/format"
	"stackshift/internal/model"
)

// ROITableModel is a sortable, paginated, searchable table of migration ROI
// estimates, one row per service with a migration plan.
type ROITableModel struct {
	tableModel
	allRows     []model.Assessment // unfiltered source data, all with ROI set
	displayRows []model.Assessment // after filter + sort applied
}

// NewROITable returns an ROITableModel with 8-column layout and default sort
// by monthly savings (col 2) descending.
func NewROITable() ROITableModel {
	cols := []columnDef{
		{Title: "Service", Width: 20, SortDesc: false},
		{Title: "Dev Cost", Width: 11, SortDesc: true},
		{Title: "Save/mo", Width: 11, SortDesc: true},
		{Title: "Annual", Width: 11, SortDesc: true},
		{Title: "Payback", Width: 9, SortDesc: false},
		{Title: "Break-even", Width: 11, SortDesc: false},
		{Title: "Year 1", Width: 9, SortDesc: true},
		{Title: "3-year", Width: 9, SortDesc: true},
	}
	m := ROITableModel{
		tableModel: newTableModel(cols),
	}
	m.sortCol = 2 // monthly savings
	m.sortDesc = true
	return m
}

// SetData applies the current search filter and sort to rows, storing the
// result as displayRows ready for rendering. Rows without an ROI estimate
// must already be filtered out by the caller.
func (m *ROITableModel) SetData(rows []model.Assessment) {
	m.allRows = rows
	filtered := filterROIRows(m.allRows, m.search)
	m.displayRows = sortROIRows(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
}

// Update handles keyboard events for sorting, pagination, and search. It
// delegates to the embedded tableModel and re-applies filter/sort when the
// sort column, direction, or search term changes.
func (m ROITableModel) Update(msg tea.Msg) (ROITableModel, tea.Cmd) {
	prevSort := m.sortCol
	prevDesc := m.sortDesc
	prevSearch := m.search

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		filtered := filterROIRows(m.allRows, m.search)
		m.displayRows = sortROIRows(filtered, m.sortCol, m.sortDesc)
	}
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
	return m, cmd
}

// cursorRow returns the assessment under the cursor, if any.
func (m *ROITableModel) cursorRow() (model.Assessment, bool) {
	pageIdx := m.pageIndices()
	if m.cursor < 0 || m.cursor >= len(pageIdx) {
		return model.Assessment{}, false
	}
	return m.displayRows[pageIdx[m.cursor]], true
}

func (m *ROITableModel) pageIndices() []int {
	allIdx := make([]int, len(m.displayRows))
	for i := range m.displayRows {
		allIdx[i] = i
	}
	return currentPageIndices(allIdx, m.page, m.pageSize)
}

// renderTable renders the complete "Migration ROI" section. Returns an empty
// string when no service carries a migration plan, so the section vanishes
// instead of showing an empty shell.
func (m *ROITableModel) renderTable(app *App) string {
	if len(m.allRows) == 0 {
		return ""
	}

	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderHeader("Migration ROI", m.page+1, pc, m.searching, m.search)

	var colWidths []int
	if app != nil && app.width > 0 {
		colWidths = columnWidths(app.width, m.columns)
	}

	headers := sortArrowHeaders(m.columns, m.sortCol, m.sortDesc)
	padHeaders(headers, colWidths)

	pageIdx := m.pageIndices()
	if len(pageIdx) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (no matching services)"))
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
			// Return columns color by sign, not position.
			if (col == 6 || col == 7) && row >= 0 && row < len(pageRows) {
				roi := pageRows[row].ROI
				pct := roi.Year1ROIPercent
				if col == 7 {
					pct = roi.ThreeYearROIPercent
				}
				if pct.IsNegative() {
					return base.Foreground(colorRed)
				}
				return base.Foreground(colorGreen)
			}
			switch col {
			case 1:
				return base.Foreground(colorOrange)
			case 2:
				return base.Foreground(colorGreen)
			case 3:
				return base.Foreground(colorCyan)
			case 4, 5:
				return base.Foreground(colorYellow)
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
			cells[col] = roiCellValue(r, col)
		}
		if len(colWidths) > 0 && colWidths[0] > 0 {
			cells[0] = truncateName(cells[0], colWidths[0])
		}
		t = t.Row(cells...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, hdr, t.String())
}

// renderHeader renders the title bar with search/sort/page hints.
// When searching is true, the live textinput view is shown instead of hints.
// When searchTerm is non-empty, the active filter is shown alongside the page info.
func (m *ROITableModel) renderHeader(title string, page, pageCount int, searching bool, searchTerm string) string {
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

// roiCellValue formats an ROI row field for a given column index.
func roiCellValue(a model.Assessment, col int) string {
	roi := a.ROI
	switch col {
	case 0:
		return sanitize(a.Service.DisplayName())
	case 1:
		return format.FormatMoney(a.Service.Migration.DevelopmentCost)
	case 2:
		return format.FormatMoney(roi.MonthlySavings)
	case 3:
		return format.FormatMoney(roi.AnnualBenefit)
	case 4:
		return format.FormatMonths(roi.PaybackMonths, roi.PaybackDefined)
	case 5:
		return format.FormatMonths(roi.BreakEvenMonths, roi.PaybackDefined)
	case 6:
		return format.FormatPercent(roi.Year1ROIPercent)
	case 7:
		return format.FormatPercent(roi.ThreeYearROIPercent)
	default:
		return ""
	}
}
