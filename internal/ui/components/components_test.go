// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lifeos-tui/internal/model"
	"github.com/jeranaias/lifeos-tui/internal/render"
	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// flatten joins a wrapped line's spans back to plain text.
func flatten(lines [][]render.Span) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		for _, s := range line {
			sb.WriteString(s.Text)
		}
		out = append(out, sb.String())
	}
	return out
}

func TestWrapSpans(t *testing.T) {
	plain := func(text string) []render.Span {
		return []render.Span{{Text: text}}
	}

	tests := []struct {
		name  string
		spans []render.Span
		width int
		want  []string
	}{
		{"fits", plain("hello world"), 20, []string{"hello world"}},
		{"wraps", plain("one two three"), 7, []string{"one two", "three"}},
		{"long word broken", plain("abcdefghij"), 4, []string{"abcd", "efgh", "ij"}},
		{"empty", plain(""), 10, []string{""}},
		{"bold run wraps whole", []render.Span{
			{Text: "alpha "},
			{Text: "beta", Bold: true},
			{Text: " gamma"},
		}, 10, []string{"alpha beta", "gamma"}},
		{"word crossing bold boundary stays joined", []render.Span{
			{Text: "pre"},
			{Text: "fix", Bold: true},
			{Text: " tail"},
		}, 6, []string{"prefix", "tail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flatten(wrapSpans(tt.spans, tt.width)))
		})
	}
}

func TestWrapSpans_KeepsBoldOnItsSegments(t *testing.T) {
	lines := wrapSpans([]render.Span{
		{Text: "plain "},
		{Text: "emphasized", Bold: true},
	}, 6)

	// "emphasized" exceeds the width and breaks mid-word; every piece of
	// it keeps its boldness.
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"plain", "emphas", "ized"}, flatten(lines))
	assert.False(t, lines[0][0].Bold)
	for _, line := range lines[1:] {
		for _, s := range line {
			assert.True(t, s.Bold)
		}
	}
}

func TestBlockRendererWrapsBeforeStyling(t *testing.T) {
	// Width math must run on plain text: a bold word near the wrap
	// boundary wraps exactly where its unstyled form would, and a broken
	// oversized bold word never carries a split escape sequence.
	r := NewBlockRenderer(styles.NewTheme(), 20)
	out := r.Render("start **" + strings.Repeat("b", 50) + "** end")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestToStr(t *testing.T) {
	assert.Equal(t, "0", toStr(0))
	assert.Equal(t, "42", toStr(42))
	assert.Equal(t, "-7", toStr(-7))
}

func TestFmtDrift(t *testing.T) {
	assert.Equal(t, "1.2%", fmtDrift(1.2))
	assert.Equal(t, "8.5%", fmtDrift(8.5))
	assert.Equal(t, "0.0%", fmtDrift(0))
}

func TestRenderPlain(t *testing.T) {
	raw := "### Status\n> **Alert**: high\n* item one\n|A|B|\n|---|---|\n|1|2|"
	got := RenderPlain(raw)

	assert.Contains(t, got, "Status")
	assert.Contains(t, got, "Alert: high")
	assert.Contains(t, got, "item one")
	assert.Contains(t, got, "A | B")
	assert.Contains(t, got, "1 | 2")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "###")
}

func TestBlockRendererTableAlignment(t *testing.T) {
	r := NewBlockRenderer(styles.NewTheme(), 60)
	out := r.Render("|Metric|Value|\n|---|---|\n|Stress|4|")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	// Separator rule matches the widest cell in each column.
	assert.Contains(t, out, "------")
}

func TestBlockRendererNeverPanics(t *testing.T) {
	r := NewBlockRenderer(styles.NewTheme(), 40)
	inputs := []string{
		"",
		"|",
		"| --- |",
		"**unterminated",
		strings.Repeat("x", 500),
		"### \n> \n* ",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { r.Render(in) })
	}
}

func TestSidebarView(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())
	state := model.NewUserState()

	var roster []model.AgentStatus
	for _, a := range model.DefaultRoster() {
		roster = append(roster, *a)
	}

	out := sb.View(state, roster, nil)
	assert.Contains(t, out, "VITALS")
	assert.Contains(t, out, "AGENTS")
	assert.Contains(t, out, "4/10")
	assert.Contains(t, out, "88/100")
	assert.Contains(t, out, "idle")

	// Highlight flips the agent row to analyzing.
	id := roster[0].ID
	out = sb.View(state, roster, &id)
	assert.Contains(t, out, "analyzing")
}

func TestStatusBar(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme(), "gemini-2.5-flash")

	ready := bar.View(100, false)
	assert.Contains(t, ready, "LINK READY")
	assert.Contains(t, ready, "gemini-2.5-flash")

	busy := bar.View(100, true)
	assert.Contains(t, busy, "LINK BUSY")
}
