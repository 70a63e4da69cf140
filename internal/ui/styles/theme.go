// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects a palette.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Auto  Mode = "auto"
)

// detectDark reports whether the terminal background is dark.
// Replaced in tests.
var detectDark = termenv.HasDarkBackground

// ParseMode parses a configuration value. "system" is accepted for Auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	case "auto", "system":
		return Auto, nil
	default:
		return Light, fmt.Errorf("unknown theme %q (want light, dark or auto)", s)
	}
}

// Resolve turns Auto into Light or Dark by asking the terminal.
func (m Mode) Resolve() Mode {
	if m != Auto {
		return m
	}
	if detectDark() {
		return Dark
	}
	return Light
}

// Toggle returns the opposite palette. Auto is resolved first.
func (m Mode) Toggle() Mode {
	if m.Resolve() == Dark {
		return Light
	}
	return Dark
}

// Theme holds all the styled components for the application.
type Theme struct {
	Mode    Mode
	Palette Palette

	// ==========================================================================
	// SHELL STYLES
	// ==========================================================================

	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderHint lipgloss.Style
	Sidebar    lipgloss.Style
	TabItem    lipgloss.Style
	TabActive  lipgloss.Style
	ThemeBtn   lipgloss.Style
	Page       lipgloss.Style
	PageTitle  lipgloss.Style
	StatusLine lipgloss.Style

	// ==========================================================================
	// CHAT STYLES
	// ==========================================================================

	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	Bold            lipgloss.Style
	Timestamp       lipgloss.Style
	InputBox        lipgloss.Style
	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style
	Empty           lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
	TableBox      lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FieldLabel    lipgloss.Style
	Field         lipgloss.Style
	FieldFocused  lipgloss.Style
	Option        lipgloss.Style
	OptionActive  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Help    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewTheme creates a theme for the given mode. Auto is resolved.
func NewTheme(mode Mode) *Theme {
	mode = mode.Resolve()
	p := LightPalette
	if mode == Dark {
		p = DarkPalette
	}
	t := &Theme{Mode: mode, Palette: p}
	t.initStyles()
	return t
}

// IsDark reports whether the dark palette is in use.
func (t *Theme) IsDark() bool {
	return t.Mode == Dark
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle().
		Background(p.Background).
		Foreground(p.Text)

	// Shell
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Surface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border).
		Padding(0, 2)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Background(p.Surface)

	t.Sidebar = lipgloss.NewStyle().
		Background(p.Sidebar).
		Foreground(p.OnAccent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Border).
		Padding(1, 1)

	t.TabItem = lipgloss.NewStyle().
		Foreground(p.OnAccent).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.SidebarHover).
		Padding(0, 1)

	t.ThemeBtn = lipgloss.NewStyle().
		Foreground(p.OnAccent).
		Background(p.SidebarHover).
		Padding(0, 1)

	t.Page = lipgloss.NewStyle().
		Background(p.Background).
		Foreground(p.Text).
		Padding(1, 2)

	t.PageTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		MarginBottom(1)

	t.StatusLine = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Chat
	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Success)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.UserBubble).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.AssistantBubble).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.Bold = lipgloss.NewStyle().Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.Empty = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Table
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.Accent).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)

	t.TableSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.AccentDeep)

	t.TableBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border)

	// Form
	t.FieldLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	t.Field = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	t.FieldFocused = t.Field.
		BorderForeground(p.Accent)

	t.Option = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Padding(0, 1)

	t.OptionActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.Accent).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(p.OnAccent).
		Background(p.Accent).
		Padding(0, 3)

	t.ButtonFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.AccentDeep).
		Padding(0, 3)

	// Status
	t.Help = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Success = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.Error = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.Warning = lipgloss.NewStyle().
		Foreground(p.Warning)
}
