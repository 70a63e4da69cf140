// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View implements tea.Model.
func (m Model) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	page := m.renderPage()

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, page)
	status := m.theme.StatusLine.Render(m.status)

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, status))
}

func (m Model) renderHeader() string {
	title := m.catalog.Title
	hint := m.catalog.QuitHint

	gap := m.width - 4 - runewidth.StringWidth(title) - runewidth.StringWidth(hint)
	if gap < 1 {
		gap = 1
	}
	line := title + strings.Repeat(" ", gap) + m.theme.HeaderHint.Render(hint)
	return m.theme.Header.Width(m.width).Render(line)
}

// tabLabels returns the sidebar entries in page order.
func (m Model) tabLabels() [pageCount]string {
	return [pageCount]string{m.catalog.TabChat, m.catalog.TabReports, m.catalog.TabSettings}
}

// themeLabel is the toggle button text: it names the palette it switches to.
func (m Model) themeLabel() string {
	if m.theme.IsDark() {
		return m.catalog.LightTheme
	}
	return m.catalog.DarkTheme
}

// sidebarWidth fits the longest label plus padding and border.
func (m Model) sidebarWidth() int {
	w := runewidth.StringWidth(m.themeLabel())
	for _, l := range m.tabLabels() {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	w += 6
	if w < minSidebar {
		w = minSidebar
	}
	return w
}

func (m Model) renderSidebar() string {
	inner := m.sidebarWidth() - 3
	height := m.height - headerHeight - statusHeight

	var items []string
	for i, label := range m.tabLabels() {
		style := m.theme.TabItem
		if Page(i) == m.page {
			style = m.theme.TabActive
		}
		items = append(items, style.Width(inner).Render(label))
	}

	top := lipgloss.JoinVertical(lipgloss.Left, items...)
	btn := m.theme.ThemeBtn.Width(inner).Render(m.themeLabel())

	// Push the theme button to the bottom of the sidebar.
	pad := height - 2 - lipgloss.Height(top) - lipgloss.Height(btn)
	if pad < 1 {
		pad = 1
	}
	content := top + strings.Repeat("\n", pad) + btn
	return m.theme.Sidebar.Height(height - 2).Render(content)
}

func (m Model) renderPage() string {
	var view string
	switch m.page {
	case PageChat:
		view = m.chat.View()
	case PageReports:
		view = m.reports.View()
	case PageSettings:
		view = m.settings.View()
	}
	w := m.width - m.sidebarWidth()
	return m.theme.Page.Width(w).Render(view)
}
