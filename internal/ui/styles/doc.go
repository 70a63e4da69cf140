// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the opsdesk console.

# Palettes (colors.go)

The console has exactly two palettes, Light and Dark. Unlike lipgloss
AdaptiveColor, the palette is chosen explicitly so the user can flip it at
runtime with ctrl+t regardless of the terminal background.

	Background  - page background
	Surface     - header, inputs, table body
	Sidebar     - navigation column
	Border      - separators and input frames
	Accent      - brand color, active tab, focused fields
	Text        - body text
	TextMuted   - hints and timestamps

# Modes (theme.go)

A Mode comes from configuration: "light", "dark" or "auto". Auto asks the
terminal through termenv.HasDarkBackground and resolves to Light or Dark once.

# Theme

Theme holds every lipgloss.Style used by the pages. Build it with NewTheme and
pass the same pointer to each page; after a toggle, pages receive a new Theme.

	theme := styles.NewTheme(styles.Dark)
	header := theme.Header.Width(80).Render(title)
*/
package styles
