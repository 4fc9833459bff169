// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lifeos TUI.
package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/lifeos-tui/internal/render"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// fmtDrift formats a portfolio drift percentage with one decimal place.
func fmtDrift(p float64) string {
	negative := p < 0
	absP := p
	if negative {
		absP = -p
	}

	// Add 0.05 for proper rounding
	rounded := absP + 0.05
	whole := int(rounded)
	frac := int((rounded - float64(whole)) * 10)

	result := toStr(whole) + "." + toStr(frac) + "%"
	if negative {
		result = "-" + result
	}
	return result
}

// spanWord is one wrappable unit: a run of non-whitespace text that may
// cross bold boundaries ("a**b**c" is a single word of three segments).
type spanWord []render.Span

// width returns the display width of the word.
func (w spanWord) width() int {
	total := 0
	for _, seg := range w {
		total += runewidth.StringWidth(seg.Text)
	}
	return total
}

// split breaks an oversized word at the given display width, preserving
// segment boldness on both sides. The head always carries at least one
// rune so wrapping makes progress even on wide characters.
func (w spanWord) split(width int) (head, tail spanWord) {
	remaining := width
	for i, seg := range w {
		segWidth := runewidth.StringWidth(seg.Text)
		if segWidth <= remaining {
			head = append(head, seg)
			remaining -= segWidth
			continue
		}
		cut := runewidth.Truncate(seg.Text, remaining, "")
		if cut == "" && len(head) == 0 {
			for _, r := range seg.Text {
				cut = string(r)
				break
			}
		}
		if cut != "" {
			head = append(head, render.Span{Text: cut, Bold: seg.Bold})
		}
		tail = append(tail, render.Span{Text: seg.Text[len(cut):], Bold: seg.Bold})
		tail = append(tail, w[i+1:]...)
		return head, tail
	}
	return head, nil
}

// splitSpanWords tokenizes spans into words, merging fragments that abut
// across a span boundary with no whitespace between them.
func splitSpanWords(spans []render.Span) []spanWord {
	var words []spanWord
	var cur spanWord

	flush := func() {
		if len(cur) > 0 {
			words = append(words, cur)
			cur = nil
		}
	}

	for _, s := range spans {
		rest := s.Text
		for rest != "" {
			i := strings.IndexAny(rest, " \t\n")
			if i < 0 {
				cur = append(cur, render.Span{Text: rest, Bold: s.Bold})
				break
			}
			if i > 0 {
				cur = append(cur, render.Span{Text: rest[:i], Bold: s.Bold})
			}
			flush()
			rest = strings.TrimLeft(rest[i:], " \t\n")
		}
	}
	flush()
	return words
}

// wrapSpans wraps spans to the given display width, returning one span
// slice per line. Wrapping happens on the plain text, before any styling,
// so ANSI sequences never skew width math or get split mid-escape. Words
// longer than the width are broken mid-word.
func wrapSpans(spans []render.Span, width int) [][]render.Span {
	if width <= 0 {
		return [][]render.Span{spans}
	}

	var lines [][]render.Span
	var line []render.Span
	lineWidth := 0

	for _, word := range splitSpanWords(spans) {
		wordWidth := word.width()

		// Break oversized words across lines
		for wordWidth > width {
			if lineWidth > 0 {
				lines = append(lines, line)
				line, lineWidth = nil, 0
			}
			head, tail := word.split(width)
			lines = append(lines, head)
			word = tail
			wordWidth = word.width()
		}
		if len(word) == 0 {
			continue
		}

		sep := 0
		if lineWidth > 0 {
			sep = 1
		}
		if lineWidth+sep+wordWidth > width {
			lines = append(lines, line)
			line = append([]render.Span{}, word...)
			lineWidth = wordWidth
		} else {
			if sep == 1 {
				line = append(line, render.Span{Text: " "})
			}
			line = append(line, word...)
			lineWidth += sep + wordWidth
		}
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return [][]render.Span{nil}
	}
	return lines
}

// padCell pads a cell to the given display width.
func padCell(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
