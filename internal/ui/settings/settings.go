// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings provides the settings page: a small form for the user's
// profile, theme and notification preference.
//
// Nothing is written to disk. Save validates the form, applies the theme to the
// running session through ThemeChangedMsg and reports the result on a status
// line.
package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

// Field identifies a focusable form element.
type Field int

const (
	FieldUsername Field = iota
	FieldEmail
	FieldTheme
	FieldNotifications
	FieldSave
	fieldCount
)

// themeModes is the order of the theme options.
var themeModes = [3]styles.Mode{styles.Light, styles.Dark, styles.Auto}

// Values is the content of the form.
type Values struct {
	Username      string `validate:"max=64"`
	Email         string `validate:"omitempty,email"`
	Theme         styles.Mode
	Notifications bool
}

// ThemeChangedMsg asks the shell to switch palettes.
type ThemeChangedMsg struct {
	Mode styles.Mode
}

// SavedMsg carries the values accepted by Save.
type SavedMsg struct {
	Values Values
}

// KeyMap defines the keyboard bindings for the form.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Save   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
		Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous field")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	}
}

// Model is the settings page.
type Model struct {
	theme    *styles.Theme
	catalog  *locale.Catalog
	validate *validator.Validate
	keyMap   KeyMap

	username      textinput.Model
	email         textinput.Model
	themeIdx      int
	notifications bool

	focus     Field
	focused   bool
	status    string
	statusErr bool
	width     int
}

// New creates the settings page with the given theme preselected.
func New(theme *styles.Theme, catalog *locale.Catalog, mode styles.Mode) Model {
	username := textinput.New()
	username.CharLimit = 64

	email := textinput.New()
	email.CharLimit = 254
	email.Placeholder = "name@example.com"

	m := Model{
		theme:         theme,
		catalog:       catalog,
		validate:      validator.New(),
		keyMap:        DefaultKeyMap(),
		username:      username,
		email:         email,
		notifications: true,
		focus:         FieldUsername,
		focused:       true,
		width:         60,
	}
	m.SetMode(mode)
	m.syncFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Next):
		m.focus = (m.focus + 1) % fieldCount
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keyMap.Prev):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keyMap.Save):
		return m.save()
	}

	switch m.focus {
	case FieldTheme:
		switch {
		case key.Matches(msg, m.keyMap.Left):
			m.themeIdx = (m.themeIdx + len(themeModes) - 1) % len(themeModes)
		case key.Matches(msg, m.keyMap.Right):
			m.themeIdx = (m.themeIdx + 1) % len(themeModes)
		}
		return m, nil

	case FieldNotifications:
		if key.Matches(msg, m.keyMap.Toggle) {
			m.notifications = !m.notifications
		}
		return m, nil

	case FieldSave:
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldUsername:
		m.username, cmd = m.username.Update(msg)
	case FieldEmail:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// save validates the form and emits the theme change.
func (m Model) save() (tea.Model, tea.Cmd) {
	v := m.Values()
	if err := m.validate.Struct(v); err != nil {
		m.status = m.catalog.InvalidEmail
		m.statusErr = true
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 && verrs[0].Field() != "Email" {
			m.status = verrs[0].Error()
		}
		return m, nil
	}

	m.status = m.catalog.Saved
	m.statusErr = false
	return m, tea.Batch(
		func() tea.Msg { return ThemeChangedMsg{Mode: v.Theme} },
		func() tea.Msg { return SavedMsg{Values: v} },
	)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme
	var rows []string

	rows = append(rows, t.PageTitle.Render(m.catalog.SettingsTitle))
	rows = append(rows, m.renderInput(m.catalog.Username, m.username, FieldUsername))
	rows = append(rows, m.renderInput(m.catalog.Email, m.email, FieldEmail))
	rows = append(rows, m.renderThemeSelect())
	rows = append(rows, m.renderCheckbox())

	btn := t.Button
	if m.focused && m.focus == FieldSave {
		btn = t.ButtonFocused
	}
	rows = append(rows, "", btn.Render(m.catalog.Save))

	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		rows = append(rows, "", style.Render(m.status))
	}
	rows = append(rows, "", t.Help.Render(m.catalog.SettingsHelp))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderInput(label string, in textinput.Model, f Field) string {
	box := m.theme.Field
	if m.focused && m.focus == f {
		box = m.theme.FieldFocused
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.FieldLabel.Render(label),
		box.Width(width).Render(in.View()),
	)
}

func (m Model) renderThemeSelect() string {
	opts := make([]string, len(themeModes))
	for i, name := range m.catalog.ThemeOptions {
		style := m.theme.Option
		if i == m.themeIdx {
			style = m.theme.OptionActive
		}
		opts[i] = style.Render(name)
	}
	marker := "  "
	if m.focused && m.focus == FieldTheme {
		marker = "▸ "
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.FieldLabel.Render(m.catalog.Theme),
		marker+strings.Join(opts, " "),
	)
}

func (m Model) renderCheckbox() string {
	box := "[ ]"
	if m.notifications {
		box = "[x]"
	}
	line := box + " " + m.catalog.Notifications
	if m.focused && m.focus == FieldNotifications {
		return "\n" + m.theme.FieldLabel.Render("▸ "+line)
	}
	return "\n  " + line
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Values returns the current form content.
func (m Model) Values() Values {
	return Values{
		Username:      strings.TrimSpace(m.username.Value()),
		Email:         strings.TrimSpace(m.email.Value()),
		Theme:         themeModes[m.themeIdx],
		Notifications: m.notifications,
	}
}

// FocusedField returns the field with keyboard focus.
func (m Model) FocusedField() Field {
	return m.focus
}

// Status returns the status line and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// SetMode selects the theme option matching mode.
func (m *Model) SetMode(mode styles.Mode) {
	for i, tm := range themeModes {
		if tm == mode {
			m.themeIdx = i
			return
		}
	}
	m.themeIdx = 0
}

// SetSize sets the page width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.username.Width = width - 8
	m.email.Width = width - 8
}

// SetTheme replaces the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetCatalog replaces the labels.
func (m *Model) SetCatalog(catalog *locale.Catalog) {
	m.catalog = catalog
	m.status = ""
}

// Focus gives the form keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.syncFocus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.username.Blur()
	m.email.Blur()
}

// syncFocus focuses the text input under the cursor, if any.
func (m *Model) syncFocus() tea.Cmd {
	m.username.Blur()
	m.email.Blur()
	if !m.focused {
		return nil
	}
	switch m.focus {
	case FieldUsername:
		return m.username.Focus()
	case FieldEmail:
		return m.email.Focus()
	}
	return nil
}
