// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

func newTestModel(mode styles.Mode) Model {
	return New(styles.NewTheme(styles.Light), locale.Lookup("en"), mode)
}

func send(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestDefaults(t *testing.T) {
	m := newTestModel(styles.Light)
	v := m.Values()
	assert.Empty(t, v.Username)
	assert.Empty(t, v.Email)
	assert.Equal(t, styles.Light, v.Theme)
	assert.True(t, v.Notifications)
	assert.Equal(t, FieldUsername, m.FocusedField())

	assert.Equal(t, styles.Auto, newTestModel(styles.Auto).Values().Theme)
	assert.Equal(t, styles.Light, newTestModel("bogus").Values().Theme)
}

func TestFieldNavigationWraps(t *testing.T) {
	m := newTestModel(styles.Light)
	for i := 0; i < int(fieldCount); i++ {
		m, _ = send(m, keyMsg(tea.KeyDown))
	}
	assert.Equal(t, FieldUsername, m.FocusedField())

	m, _ = send(m, keyMsg(tea.KeyUp))
	assert.Equal(t, FieldSave, m.FocusedField())
}

func TestEditAndSave(t *testing.T) {
	m := newTestModel(styles.Light)

	m, _ = send(m, runes("ayse"))
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, runes("ayse@example.com"))
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, keyMsg(tea.KeyRight))
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, keyMsg(tea.KeySpace))

	v := m.Values()
	assert.Equal(t, "ayse", v.Username)
	assert.Equal(t, "ayse@example.com", v.Email)
	assert.Equal(t, styles.Dark, v.Theme)
	assert.False(t, v.Notifications)

	m, cmd := send(m, keyMsg(tea.KeyEnter))
	status, isErr := m.Status()
	assert.Equal(t, "Settings applied", status)
	assert.False(t, isErr)

	msgs := collect(cmd)
	require.Len(t, msgs, 2)
	assert.Equal(t, ThemeChangedMsg{Mode: styles.Dark}, msgs[0])
	assert.Equal(t, SavedMsg{Values: v}, msgs[1])
	assert.Contains(t, m.View(), "Settings applied")
}

func TestSaveRejectsBadEmail(t *testing.T) {
	m := newTestModel(styles.Light)
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, runes("not-an-email"))

	m, cmd := send(m, keyMsg(tea.KeyEnter))
	assert.Nil(t, cmd)
	status, isErr := m.Status()
	assert.Equal(t, "Invalid email address", status)
	assert.True(t, isErr)
}

func TestThemeOptionWraps(t *testing.T) {
	m := newTestModel(styles.Light)
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, keyMsg(tea.KeyDown))
	require.Equal(t, FieldTheme, m.FocusedField())

	m, _ = send(m, keyMsg(tea.KeyLeft))
	assert.Equal(t, styles.Auto, m.Values().Theme)
	m, _ = send(m, keyMsg(tea.KeyRight))
	assert.Equal(t, styles.Light, m.Values().Theme)
}

func TestBlurIgnoresTyping(t *testing.T) {
	m := newTestModel(styles.Light)
	m.Blur()
	m, _ = send(m, runes("x"))
	assert.Empty(t, m.Values().Username)

	m.Focus()
	m, _ = send(m, runes("x"))
	assert.Equal(t, "x", m.Values().Username)
}

func TestViewLabels(t *testing.T) {
	m := New(styles.NewTheme(styles.Dark), locale.Lookup("tr"), styles.Dark)
	view := m.View()
	for _, s := range []string{"Ayarlar", "Kullanıcı Adı", "E-posta", "Koyu", "[x]", "Kaydet"} {
		assert.Contains(t, view, s)
	}
}
