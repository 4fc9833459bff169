// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom status line: link state, model name, and the
// keyboard shortcut hints.
type StatusBar struct {
	theme *styles.Theme
	model string
}

// NewStatusBar creates a status bar for the given theme and model name.
func NewStatusBar(theme *styles.Theme, modelName string) *StatusBar {
	return &StatusBar{theme: theme, model: modelName}
}

// shortcut is one key hint on the status bar.
type shortcut struct {
	key  string
	desc string
}

var shortcuts = []shortcut{
	{"Enter", "send"},
	{"F1", "stress"},
	{"F2", "wealth"},
	{"F3", "health"},
	{"Ctrl+C", "quit"},
}

// View renders the status bar at the given width.
func (b *StatusBar) View(width int, busy bool) string {
	var left string
	if busy {
		left = b.theme.StatusBusy.Render("LINK BUSY")
	} else {
		left = b.theme.StatusReady.Render("LINK READY")
	}
	left += b.theme.ShortcutDesc.Render(" | " + b.model)

	var hints []string
	for _, s := range shortcuts {
		hints = append(hints, b.theme.ShortcutKey.Render(s.key)+b.theme.ShortcutDesc.Render(":"+s.desc))
	}
	right := strings.Join(hints, " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return b.theme.StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}
