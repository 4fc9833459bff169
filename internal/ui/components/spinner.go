// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// PROCESSING SPINNER
// =============================================================================

// Spinner is the loading indicator shown while a request cycle is in
// flight. ASCII frames only, for maximum terminal compatibility.
type Spinner struct {
	spinner   spinner.Model
	theme     *styles.Theme
	message   string
	startTime time.Time
	isActive  bool
}

// NewSpinner creates a spinner with default settings.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	return Spinner{
		spinner: s,
		theme:   theme,
		message: "Orchestrating",
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update handles messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its message and elapsed time.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	result := s.theme.Spinner.Render(s.spinner.View()) +
		" " + s.theme.ThinkingText.Render(s.message) +
		s.theme.Spinner.Render("...")

	if !s.startTime.IsZero() {
		elapsed := int(time.Since(s.startTime).Seconds())
		result += s.theme.Timestamp.Render(" (" + toStr(elapsed) + "s)")
	}

	return result
}
