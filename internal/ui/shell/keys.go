// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings. They take precedence over the
// bindings of the active page.
type KeyMap struct {
	Quit        key.Binding
	ToggleTheme key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Chat        key.Binding
	Reports     key.Binding
	Settings    key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
		Chat: key.NewBinding(
			key.WithKeys("alt+1", "f1"),
			key.WithHelp("F1", "ask the AI"),
		),
		Reports: key.NewBinding(
			key.WithKeys("alt+2", "f2"),
			key.WithHelp("F2", "reports"),
		),
		Settings: key.NewBinding(
			key.WithKeys("alt+3", "f3"),
			key.WithHelp("F3", "settings"),
		),
	}
}
