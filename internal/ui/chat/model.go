// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/model"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

// State is the page state.
type State int

const (
	// StateReady accepts input.
	StateReady State = iota
	// StateWaiting has a turn in flight.
	StateWaiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateWaiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// chrome is the number of rows taken by everything except the viewport:
// title (2), status line (1), input box (3), help (1).
const chrome = 7

// Model is the chat page.
type Model struct {
	state      State
	theme      *styles.Theme
	catalog    *locale.Catalog
	controller *assistant.Controller
	logger     *zap.Logger

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Pointer so Bubble Tea's model copies share one mutex
	cancelMgr *cancelManager

	turnID  string
	started time.Time
	width   int
	height  int
	focused bool
}

// New creates the chat page.
func New(theme *styles.Theme, catalog *locale.Catalog, controller *assistant.Controller, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = catalog.Placeholder
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		state:      StateReady,
		theme:      theme,
		catalog:    catalog,
		controller: controller,
		logger:     logger.Named("chat"),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
		cancelMgr:  newCancelManager(),
		width:      80,
		height:     20 + chrome,
		focused:    true,
	}
	m.applyTheme()
	m.updateViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.state == StateWaiting && m.cancelMgr.cancel() {
			m.logger.Info("request cancelled", zap.String("turn", m.turnID))
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a turn with the current input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StateWaiting {
		return m, nil
	}

	turn, err := m.controller.Begin(m.input.Value())
	if errors.Is(err, assistant.ErrEmptyInput) {
		return m, nil
	}
	if err != nil {
		m.logger.Warn("turn rejected", zap.Error(err))
		return m, nil
	}

	m.input.Reset()
	m.state = StateWaiting
	m.turnID = turn.ID()
	m.started = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)
	m.updateViewport()

	started := func() tea.Msg { return TurnStartedMsg{TurnID: turn.ID()} }
	return m, tea.Batch(runTurn(ctx, turn), m.spinner.Tick, started)
}

// runTurn runs the network call off the Update loop.
func runTurn(ctx context.Context, turn *assistant.Turn) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Reply: turn.Run(ctx)}
	}
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if _, err := m.controller.Complete(msg.Reply); err != nil {
		m.logger.Warn("dropping reply", zap.String("turn", msg.Reply.TurnID), zap.Error(err))
		return m, nil
	}
	m.cancelMgr.cancel()
	m.state = StateReady
	m.turnID = ""
	m.updateViewport()

	cancelled := errors.Is(msg.Reply.Err, context.Canceled)
	done := TurnCompletedMsg{TurnID: msg.Reply.TurnID, Cancelled: cancelled}
	return m, func() tea.Msg { return done }
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.updateViewport()
}

// SetTheme replaces the theme and re-renders.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.applyTheme()
	m.updateViewport()
}

// SetCatalog replaces the labels and re-renders.
func (m *Model) SetCatalog(catalog *locale.Catalog) {
	m.catalog = catalog
	m.input.Placeholder = catalog.Placeholder
	m.updateViewport()
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus from the input.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// State returns the page state.
func (m Model) State() State {
	return m.state
}

// IsWaiting reports whether a turn is in flight.
func (m Model) IsWaiting() bool {
	return m.state == StateWaiting
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Conversation returns the conversation shown on the page.
func (m Model) Conversation() *model.Conversation {
	return m.controller.Conversation()
}

// Cancel cancels the turn in flight, if any.
func (m Model) Cancel() {
	m.cancelMgr.cancel()
}

func (m *Model) applyTheme() {
	m.spinner.Style = m.theme.Spinner
	m.input.PromptStyle = m.theme.UserLabel
	m.input.PlaceholderStyle = m.theme.Empty
}
