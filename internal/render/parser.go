// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns the model's mini-markup replies into typed display
// blocks.
//
// The grammar is deliberately small: level-3 headings, callouts, bulleted
// list items, pipe tables, blank spacers, and paragraphs, with **bold** as
// the only inline markup. Parsing is line-oriented, single-pass, and total:
// malformed input degrades to paragraph blocks, never to an error.
package render

import (
	"regexp"
	"strings"
)

// =============================================================================
// BLOCK TYPES
// =============================================================================

// Kind identifies the shape of a display block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindCallout
	KindListItem
	KindSpacer
	KindTable
)

// String returns the name of the block kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCallout:
		return "callout"
	case KindListItem:
		return "list-item"
	case KindSpacer:
		return "spacer"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Span is one run of inline text, plain or bold.
type Span struct {
	Text string
	Bold bool
}

// Block is one unit of structured output from the parser.
//
// Which fields are populated depends on Kind: headings carry Text verbatim,
// callouts/list items/paragraphs carry inline-processed Spans, tables carry
// Header and Rows, spacers carry nothing.
type Block struct {
	Kind   Kind
	Text   string
	Spans  []Span
	Header []string
	Rows   [][]string
}

// =============================================================================
// PARSER
// =============================================================================

// separatorRowPattern matches a dash-or-whitespace-only run between pipes,
// the shape of a markdown table separator row.
var separatorRowPattern = regexp.MustCompile(`\|[\s-]+\|`)

// boldPattern matches a non-greedy **...** run.
var boldPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// Parse maps a raw reply string to an ordered sequence of typed blocks.
//
// It is pure, deterministic, and never fails. Lines are classified top to
// bottom with a single line of lookbehind state: whether we are inside a
// table. The first table-start line after non-table context always becomes
// the header, even when it looks like a separator row; subsequent separator
// rows are skipped; any other table-start line becomes a body row. A table
// flushes on the first non-table line and at end of input, and only
// materializes if a header was captured.
func Parse(raw string) []Block {
	lines := strings.Split(raw, "\n")
	blocks := make([]Block, 0, len(lines))

	var (
		inTable     bool
		tableHeader []string
		tableRows   [][]string
	)

	flushTable := func() {
		if inTable && len(tableHeader) > 0 {
			blocks = append(blocks, Block{
				Kind:   KindTable,
				Header: tableHeader,
				Rows:   tableRows,
			})
		}
		inTable = false
		tableHeader = nil
		tableRows = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Table rows
		if strings.HasPrefix(trimmed, "|") {
			cells := splitCells(trimmed)
			if !inTable {
				// First table-start line is always the header.
				inTable = true
				tableHeader = cells
			} else if separatorRowPattern.MatchString(trimmed) {
				// Separator rows contribute nothing.
			} else {
				tableRows = append(tableRows, cells)
			}
			continue
		}
		flushTable()

		// Headings
		if strings.HasPrefix(line, "### ") {
			blocks = append(blocks, Block{
				Kind: KindHeading,
				Text: strings.TrimPrefix(line, "### "),
			})
			continue
		}

		// Callouts
		if strings.HasPrefix(line, "> ") {
			blocks = append(blocks, Block{
				Kind:  KindCallout,
				Spans: parseInline(strings.TrimPrefix(line, "> ")),
			})
			continue
		}

		// List items
		if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
			blocks = append(blocks, Block{
				Kind:  KindListItem,
				Spans: parseInline(trimmed[2:]),
			})
			continue
		}

		// Blank lines
		if trimmed == "" {
			blocks = append(blocks, Block{Kind: KindSpacer})
			continue
		}

		// Paragraph fallback
		blocks = append(blocks, Block{
			Kind:  KindParagraph,
			Spans: parseInline(line),
		})
	}

	// Unterminated tables at end of input still flush.
	flushTable()

	return blocks
}

// splitCells splits a table line into its pipe-delimited cells, trimming
// each and dropping empties.
func splitCells(trimmed string) []string {
	var cells []string
	for _, c := range strings.Split(trimmed, "|") {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// parseInline splits text on non-greedy **...** runs, alternating plain and
// bold spans. The delimiters are stripped from bold spans. This is the only
// inline markup supported.
func parseInline(text string) []Span {
	var spans []Span

	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}

	return spans
}

// PlainText flattens a block back to unstyled text. Used by exports and by
// surfaces that cannot render styling.
func (b Block) PlainText() string {
	switch b.Kind {
	case KindHeading:
		return b.Text
	case KindTable:
		var sb strings.Builder
		sb.WriteString(strings.Join(b.Header, " | "))
		for _, row := range b.Rows {
			sb.WriteString("\n")
			sb.WriteString(strings.Join(row, " | "))
		}
		return sb.String()
	case KindSpacer:
		return ""
	default:
		var sb strings.Builder
		for _, s := range b.Spans {
			sb.WriteString(s.Text)
		}
		return sb.String()
	}
}
