// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell is the top-level Bubble Tea model of the console. It draws the
// header and the sidebar, owns the three pages and routes messages to them.
package shell

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/config"
	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/ui/chat"
	"github.com/jeranaias/opsdesk/internal/ui/reports"
	"github.com/jeranaias/opsdesk/internal/ui/settings"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

// Page identifies a sidebar entry.
type Page int

const (
	PageChat Page = iota
	PageReports
	PageSettings
	pageCount
)

// Layout constants.
const (
	headerHeight = 2
	statusHeight = 1
	minSidebar   = 18
)

// ConfigReloadedMsg is sent when the configuration file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ClientFactory builds a completion client from the [gemini] section.
type ClientFactory func(cfg config.GeminiConfig) assistant.Completer

// Options configures the shell.
type Options struct {
	Config     *config.Config
	Controller *assistant.Controller
	NewClient  ClientFactory
	Logger     *zap.Logger
}

// Model is the application shell.
type Model struct {
	mode    styles.Mode
	theme   *styles.Theme
	catalog *locale.Catalog
	keyMap  KeyMap

	controller *assistant.Controller
	newClient  ClientFactory
	logger     *zap.Logger

	page     Page
	chat     chat.Model
	reports  reports.Model
	settings settings.Model

	status string
	width  int
	height int
}

// New creates the shell from the loaded configuration.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		logger.Warn("unknown theme, using light", zap.String("theme", cfg.UI.Theme))
	}
	theme := styles.NewTheme(mode)
	catalog := locale.Lookup(cfg.UI.Language)

	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = assistant.New(nil, nil, catalog.Fallbacks(), logger)
	}

	m := Model{
		mode:       mode,
		theme:      theme,
		catalog:    catalog,
		keyMap:     DefaultKeyMap(),
		controller: ctrl,
		newClient:  opts.NewClient,
		logger:     logger.Named("shell"),
		page:       PageChat,
		chat:       chat.New(theme, catalog, ctrl, logger),
		reports:    reports.New(theme, catalog),
		settings:   settings.New(theme, catalog, mode),
		width:      100,
		height:     30,
	}
	m.reports.Blur()
	m.settings.Blur()
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.chat.Init(), m.reports.Init(), m.settings.Init())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case settings.ThemeChangedMsg:
		m.setMode(msg.Mode)
		return m, nil

	case settings.SavedMsg:
		m.logger.Info("settings applied",
			zap.String("theme", string(msg.Values.Theme)),
			zap.Bool("notifications", msg.Values.Notifications),
		)
		return m, nil

	case ConfigReloadedMsg:
		return m.handleReload(msg)

	// The chat page keeps working in the background.
	case chat.ReplyMsg, chat.TurnStartedMsg, chat.TurnCompletedMsg, spinner.TickMsg:
		return m.updateChat(msg)
	}

	return m.updateActive(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.chat.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ToggleTheme):
		m.setMode(m.mode.Toggle())
		return m, nil

	case key.Matches(msg, m.keyMap.NextPage):
		return m.switchTo((m.page + 1) % pageCount)

	case key.Matches(msg, m.keyMap.PrevPage):
		return m.switchTo((m.page + pageCount - 1) % pageCount)

	case key.Matches(msg, m.keyMap.Chat):
		return m.switchTo(PageChat)

	case key.Matches(msg, m.keyMap.Reports):
		return m.switchTo(PageReports)

	case key.Matches(msg, m.keyMap.Settings):
		return m.switchTo(PageSettings)
	}
	return m.updateActive(msg)
}

// switchTo moves focus to page p.
func (m Model) switchTo(p Page) (tea.Model, tea.Cmd) {
	if p == m.page {
		return m, nil
	}
	m.chat.Blur()
	m.reports.Blur()
	m.settings.Blur()

	var cmd tea.Cmd
	switch p {
	case PageChat:
		cmd = m.chat.Focus()
	case PageReports:
		m.reports.Focus()
	case PageSettings:
		cmd = m.settings.Focus()
	}
	m.page = p
	return m, cmd
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Model
	var cmd tea.Cmd
	switch m.page {
	case PageChat:
		return m.updateChat(msg)
	case PageReports:
		next, cmd = m.reports.Update(msg)
		m.reports = next.(reports.Model)
	case PageSettings:
		next, cmd = m.settings.Update(msg)
		m.settings = next.(settings.Model)
	}
	return m, cmd
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.chat.Update(msg)
	m.chat = next.(chat.Model)
	return m, cmd
}

// handleReload applies a configuration change from disk.
func (m Model) handleReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", zap.Error(msg.Err))
		m.status = msg.Err.Error()
		return m, nil
	}
	cfg := msg.Config

	if mode, err := styles.ParseMode(cfg.UI.Theme); err == nil {
		m.setMode(mode)
		m.settings.SetMode(mode)
	}
	m.setCatalog(locale.Lookup(cfg.UI.Language))
	if m.newClient != nil {
		m.controller.SetClient(m.newClient(cfg.Gemini))
	}

	m.status = m.catalog.Reloaded
	m.logger.Info("config reloaded",
		zap.String("theme", cfg.UI.Theme),
		zap.String("language", cfg.UI.Language),
		zap.String("model", cfg.Gemini.Model),
	)
	return m, nil
}

func (m *Model) setMode(mode styles.Mode) {
	m.mode = mode.Resolve()
	m.theme = styles.NewTheme(m.mode)
	m.chat.SetTheme(m.theme)
	m.reports.SetTheme(m.theme)
	m.settings.SetTheme(m.theme)
}

func (m *Model) setCatalog(c *locale.Catalog) {
	m.catalog = c
	m.controller.SetFallbacks(c.Fallbacks())
	m.chat.SetCatalog(c)
	m.reports.SetCatalog(c)
	m.settings.SetCatalog(c)
	m.layout()
}

// layout resizes the pages to the space right of the sidebar.
func (m *Model) layout() {
	w := m.width - m.sidebarWidth()
	h := m.height - headerHeight - statusHeight
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	// Page padding: 2 columns each side, 1 row top and bottom
	m.chat.SetSize(w-4, h-2)
	m.reports.SetSize(w-4, h-2)
	m.settings.SetSize(w-4, h-2)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ActivePage returns the page with focus.
func (m Model) ActivePage() Page { return m.page }

// Mode returns the resolved theme mode.
func (m Model) Mode() styles.Mode { return m.mode }

// Catalog returns the labels in use.
func (m Model) Catalog() *locale.Catalog { return m.catalog }

// Chat returns the chat page.
func (m Model) Chat() chat.Model { return m.chat }

// Status returns the status line text.
func (m Model) Status() string { return m.status }
