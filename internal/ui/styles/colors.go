// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors for one theme.
type Palette struct {
	Background   lipgloss.Color
	Surface      lipgloss.Color
	Sidebar      lipgloss.Color
	SidebarHover lipgloss.Color
	Border       lipgloss.Color
	Accent       lipgloss.Color
	AccentDeep   lipgloss.Color
	OnAccent     lipgloss.Color
	Text         lipgloss.Color
	TextMuted    lipgloss.Color

	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
}

// =============================================================================
// LIGHT
// =============================================================================

// LightPalette is white pages with the teal brand sidebar.
var LightPalette = Palette{
	Background:   "#FFFFFF",
	Surface:      "#F0F0F0",
	Sidebar:      "#2198C1",
	SidebarHover: "#1A7A9F",
	Border:       "#E0E0E0",
	Accent:       "#2198C1",
	AccentDeep:   "#156A8A",
	OnAccent:     "#FFFFFF",
	Text:         "#1F2937",
	TextMuted:    "#6B7280",

	UserBubble:      "#F0F0F0",
	AssistantBubble: "#FFFFFF",

	Success: "#059669",
	Warning: "#D97706",
	Danger:  "#E11D48",
}

// =============================================================================
// DARK
// =============================================================================

// DarkPalette is near-black pages with a blue accent.
var DarkPalette = Palette{
	Background:   "#121212",
	Surface:      "#1A1A1A",
	Sidebar:      "#1A1A1A",
	SidebarHover: "#2C2C2C",
	Border:       "#2C2C2C",
	Accent:       "#4A9EFF",
	AccentDeep:   "#3A7FCF",
	OnAccent:     "#FFFFFF",
	Text:         "#ECECF1",
	TextMuted:    "#8E8EA0",

	UserBubble:      "#343541",
	AssistantBubble: "#444654",

	Success: "#34D399",
	Warning: "#FBBF24",
	Danger:  "#FB7185",
}
