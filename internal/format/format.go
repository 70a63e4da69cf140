// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns a raw completion into the small markup fragment shown
// in chat bubbles.
//
// The fragment uses two tags only: <br> between lines and <b>...</b> around
// header lines. Any other markup in the completion passes through unescaped.
package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// BoldMarker is the markdown emphasis token removed from every completion.
	BoldMarker = "**"

	// BulletToken starts a list line in the raw completion.
	BulletToken = "*"

	// BulletGlyph replaces the first BulletToken of a list line.
	BulletGlyph = "•"

	// BulletIndent is prefixed to every list line.
	BulletIndent = "    "

	// LineBreak joins the formatted lines.
	LineBreak = "<br>"

	boldOpen  = "<b>"
	boldClose = "</b>"
)

// Format applies the fixed substitutions in order:
//
//  1. every BoldMarker is removed
//  2. each line whose trimmed form starts with BulletToken gets its first
//     token replaced by BulletGlyph and is indented; otherwise a line whose
//     trimmed form ends with ':' is wrapped in <b></b>
//  3. lines are joined with LineBreak
//
// A header line that carried inline emphasis over only part of its text
// (e.g. "**Hi** there:", or "**Summary**:" where the colon sits outside the
// markers) is not wrapped again after its markers are gone.
// A line emphasized from end to end ("**Summary:**") still is.
//
// Format is pure and safe for concurrent use.
func Format(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))

	for _, original := range lines {
		original = strings.TrimSuffix(original, "\r")
		partial := hasPartialEmphasis(original)
		line := strings.ReplaceAll(original, BoldMarker, "")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, BulletToken):
			line = BulletIndent + strings.Replace(line, BulletToken, BulletGlyph, 1)
		case strings.HasSuffix(trimmed, ":") && !partial:
			line = boldOpen + line + boldClose
		}
		out = append(out, line)
	}

	return strings.Join(out, LineBreak)
}

// hasPartialEmphasis reports whether line contains bold markers that do not
// enclose the whole trimmed line.
func hasPartialEmphasis(line string) bool {
	t := strings.TrimSpace(line)
	n := strings.Count(t, BoldMarker)
	if n == 0 {
		return false
	}
	whole := n == 2 && len(t) > 2*len(BoldMarker) &&
		strings.HasPrefix(t, BoldMarker) && strings.HasSuffix(t, BoldMarker)
	return !whole
}

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

var boldSpan = regexp.MustCompile(`<b>(.*?)</b>`)

// Terminal converts a fragment produced by Format into text for a terminal.
// LineBreak becomes a newline and bold spans are rendered with the given style.
func Terminal(fragment string, bold lipgloss.Style) string {
	text := strings.ReplaceAll(fragment, LineBreak, "\n")
	return boldSpan.ReplaceAllStringFunc(text, func(span string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(span, boldOpen), boldClose)
		return bold.Render(inner)
	})
}

// Plain converts a fragment into unstyled text, dropping the bold tags.
// Used when output is not a terminal.
func Plain(fragment string) string {
	text := strings.ReplaceAll(fragment, LineBreak, "\n")
	return boldSpan.ReplaceAllString(text, "$1")
}
