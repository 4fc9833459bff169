// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/lifeos-tui/internal/render"
	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// BLOCK RENDERER
// =============================================================================

// BlockRenderer turns parsed reply blocks into styled terminal text.
type BlockRenderer struct {
	theme *styles.Theme
	width int
}

// NewBlockRenderer creates a renderer for the given theme and content width.
func NewBlockRenderer(theme *styles.Theme, width int) *BlockRenderer {
	if width < 20 {
		width = 20
	}
	return &BlockRenderer{theme: theme, width: width}
}

// SetWidth updates the wrap width for subsequent renders.
func (r *BlockRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	r.width = width
}

// Render renders a full reply into styled lines joined by newlines.
func (r *BlockRenderer) Render(raw string) string {
	blocks := render.Parse(raw)

	var out []string
	for _, b := range blocks {
		out = append(out, r.renderBlock(b))
	}
	return strings.Join(out, "\n")
}

// renderBlock renders a single block.
func (r *BlockRenderer) renderBlock(b render.Block) string {
	switch b.Kind {
	case render.KindHeading:
		return r.theme.BlockHeading.Render(b.Text)

	case render.KindCallout:
		body := strings.Join(r.renderWrapped(b.Spans, r.width-2), "\n")
		return r.theme.BlockCallout.Render(body)

	case render.KindListItem:
		dot := r.theme.BlockListDot.Render("*")
		lines := r.renderWrapped(b.Spans, r.width-2)
		for i := range lines {
			if i == 0 {
				lines[i] = dot + " " + lines[i]
			} else {
				lines[i] = "  " + lines[i]
			}
		}
		return strings.Join(lines, "\n")

	case render.KindSpacer:
		return ""

	case render.KindTable:
		return r.renderTable(b)

	default:
		return strings.Join(r.renderWrapped(b.Spans, r.width), "\n")
	}
}

// renderWrapped wraps spans on their plain text, then styles each line.
// Styling after wrapping keeps ANSI sequences out of the width math.
func (r *BlockRenderer) renderWrapped(spans []render.Span, width int) []string {
	wrapped := wrapSpans(spans, width)
	lines := make([]string, 0, len(wrapped))
	for _, lineSpans := range wrapped {
		lines = append(lines, r.renderSpans(lineSpans))
	}
	return lines
}

// renderSpans flattens spans to styled text. Bold runs get the bold block
// style; plain runs pass through untouched.
func (r *BlockRenderer) renderSpans(spans []render.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Bold {
			sb.WriteString(r.theme.BlockBold.Render(s.Text))
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// renderTable renders header and body rows with aligned columns. Rows whose
// width differs from the header keep their own cell count; missing cells
// render empty.
func (r *BlockRenderer) renderTable(b render.Block) string {
	widths := make([]int, len(b.Header))
	for i, h := range b.Header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range b.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var lines []string

	var hdr []string
	for i, h := range b.Header {
		hdr = append(hdr, r.theme.TableHeader.Render(padCell(h, widths[i])))
	}
	lines = append(lines, strings.Join(hdr, "  "))

	var rule []string
	for _, w := range widths {
		rule = append(rule, strings.Repeat("-", w))
	}
	lines = append(lines, r.theme.TableRule.Render(strings.Join(rule, "  ")))

	for _, row := range b.Rows {
		var cells []string
		for i, cell := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			cells = append(cells, r.theme.TableCell.Render(padCell(cell, w)))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}

	return strings.Join(lines, "\n")
}

// RenderPlain renders a reply without any styling. Used by surfaces that
// cannot carry ANSI sequences.
func RenderPlain(raw string) string {
	blocks := render.Parse(raw)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.PlainText())
	}
	return strings.Join(out, "\n")
}
