// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reports provides the read-only reports page: a table of the reports
// known to the console.
package reports

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

// cellPadding is added to the widest cell of each column.
const cellPadding = 2

// headerRows covers the header line and its border.
const headerRows = 3

// Report is one row of the table.
type Report struct {
	Name    string
	Created string
	Size    string
	Status  string
}

// Model is the reports page.
type Model struct {
	theme   *styles.Theme
	catalog *locale.Catalog
	table   table.Model
	width   int
	height  int
}

// New creates the reports page.
func New(theme *styles.Theme, catalog *locale.Catalog) Model {
	m := Model{
		theme:   theme,
		catalog: catalog,
		width:   80,
		height:  20,
	}
	m.table = table.New(
		table.WithColumns(Columns(catalog)),
		table.WithRows(rows(catalog)),
		table.WithFocused(true),
		table.WithHeight(len(catalog.ReportRows)+headerRows),
	)
	m.applyTheme()
	return m
}

// Columns builds the column set, each wide enough for its widest cell.
func Columns(catalog *locale.Catalog) []table.Column {
	cols := make([]table.Column, len(catalog.ReportColumns))
	for i, title := range catalog.ReportColumns {
		width := runewidth.StringWidth(title)
		for _, row := range catalog.ReportRows {
			if w := runewidth.StringWidth(row[i]); w > width {
				width = w
			}
		}
		cols[i] = table.Column{Title: title, Width: width + cellPadding}
	}
	return cols
}

func rows(catalog *locale.Catalog) []table.Row {
	out := make([]table.Row, 0, len(catalog.ReportRows))
	for _, r := range catalog.ReportRows {
		out = append(out, table.Row{r[0], r[1], r[2], r[3]})
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	title := m.theme.PageTitle.Render(m.catalog.ReportsTitle)
	body := m.theme.TableBox.Render(m.table.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	h := len(m.catalog.ReportRows) + headerRows
	if limit := height - 4; limit > 1 && h > limit {
		h = limit
	}
	m.table.SetHeight(h)
}

// SetTheme replaces the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.applyTheme()
}

// SetCatalog switches the language of headers and rows.
func (m *Model) SetCatalog(catalog *locale.Catalog) {
	m.catalog = catalog
	m.table.SetRows(nil)
	m.table.SetColumns(Columns(catalog))
	m.table.SetRows(rows(catalog))
	m.SetSize(m.width, m.height)
}

// Focus gives the table keyboard focus.
func (m *Model) Focus() { m.table.Focus() }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.table.Blur() }

// Selected returns the highlighted report.
func (m Model) Selected() (Report, bool) {
	row := m.table.SelectedRow()
	if len(row) < 4 {
		return Report{}, false
	}
	return Report{Name: row[0], Created: row[1], Size: row[2], Status: row[3]}, true
}

// Reports returns all rows.
func (m Model) Reports() []Report {
	out := make([]Report, 0, len(m.table.Rows()))
	for _, row := range m.table.Rows() {
		out = append(out, Report{Name: row[0], Created: row[1], Size: row[2], Status: row[3]})
	}
	return out
}

func (m *Model) applyTheme() {
	s := table.DefaultStyles()
	s.Header = m.theme.TableHeader
	s.Cell = m.theme.TableCell
	s.Selected = m.theme.TableSelected
	m.table.SetStyles(s)
}
