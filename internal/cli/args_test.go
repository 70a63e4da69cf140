// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgParser_Flags(t *testing.T) {
	p := NewArgParser([]string{"--raw", "hello", "--timeout", "5", "--model=flash", "world"}, "raw")

	assert.True(t, p.BoolFlag("raw"))
	assert.Equal(t, "5", p.Flag("timeout"))
	assert.Equal(t, "flash", p.Flag("--model"))
	assert.Equal(t, []string{"hello", "world"}, p.PositionalFrom(0))
	assert.Equal(t, "hello", p.Positional(0))

	n, err := p.FlagInt("timeout")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestArgParser_UndeclaredBoolTakesValue(t *testing.T) {
	p := NewArgParser([]string{"--raw", "hello"})
	assert.False(t, p.BoolFlag("raw"))
	assert.Equal(t, "hello", p.Flag("raw"))
	assert.Empty(t, p.PositionalFrom(0))
}

func TestArgParser_DoubleDash(t *testing.T) {
	p := NewArgParser([]string{"--raw", "--", "--not-a-flag", "x"}, "raw")
	assert.True(t, p.BoolFlag("raw"))
	assert.Equal(t, []string{"--not-a-flag", "x"}, p.PositionalFrom(0))
	assert.False(t, p.HasFlag("not-a-flag"))
}

func TestArgParser_ExplicitBoolValue(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--md=true"})
	assert.True(t, p.HasFlag("json"))
	assert.False(t, p.BoolFlag("json"))
	assert.True(t, p.BoolFlag("md"))
}

func TestArgParser_Defaults(t *testing.T) {
	p := NewArgParser(nil)
	assert.Equal(t, "", p.Positional(0))
	assert.Equal(t, "", p.Positional(-1))
	assert.Empty(t, p.PositionalFrom(3))

	_, err := p.FlagInt("missing")
	assert.Error(t, err)
}
