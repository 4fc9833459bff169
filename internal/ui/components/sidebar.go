// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/lifeos-tui/internal/model"
	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// SIDEBAR
// =============================================================================

// Sidebar shows the user vitals and the agent roster beside the chat log.
type Sidebar struct {
	theme *styles.Theme
	width int
}

// NewSidebar creates a sidebar for the given theme.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme, width: 26}
}

// SetWidth updates the sidebar width.
func (s *Sidebar) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	s.width = width
}

// Width returns the current sidebar width including its border.
func (s *Sidebar) Width() int {
	return s.width
}

// View renders the sidebar for the given state and roster.
func (s *Sidebar) View(state model.UserState, roster []model.AgentStatus, highlighted *model.AgentID) string {
	var sections []string

	sections = append(sections, s.theme.SidebarTitle.Render("VITALS"))
	sections = append(sections, s.vitalLine("Stress", toStr(state.StressLevel)+"/10", state.StressLevel >= 7))
	sections = append(sections, s.vitalLine("Drift", fmtDrift(state.PortfolioDrift), state.PortfolioDrift >= 5))
	sections = append(sections, s.vitalLine("Health", toStr(state.HealthScore)+"/100", state.HealthScore < 70))

	sections = append(sections, "")
	sections = append(sections, s.theme.SidebarTitle.Render("AGENTS"))
	for _, a := range roster {
		sections = append(sections, s.agentLine(a, highlighted))
	}

	return s.theme.Sidebar.Width(s.width).Render(strings.Join(sections, "\n"))
}

// vitalLine renders one vital row, switching to the alert style when the
// reading crosses its threshold.
func (s *Sidebar) vitalLine(label, value string, alert bool) string {
	valStyle := s.theme.VitalValue
	if alert {
		valStyle = s.theme.VitalAlert
	}
	return s.theme.VitalLabel.Render(label+": ") + valStyle.Render(value)
}

// agentLine renders one roster row. The highlighted agent gets its accent
// color and an active marker; idle agents render muted.
func (s *Sidebar) agentLine(a model.AgentStatus, highlighted *model.AgentID) string {
	active := highlighted != nil && *highlighted == a.ID

	if active || a.Status == model.AgentAnalyzing {
		style := s.theme.AgentAnalyzing.Foreground(styles.AgentColor(a.Color))
		return style.Render("[*] " + a.Name + " analyzing")
	}
	return s.theme.AgentIdle.Render("[ ] " + a.Name + " idle")
}

// =============================================================================
// HEADER
// =============================================================================

// Header renders the application banner.
type Header struct {
	theme *styles.Theme
}

// NewHeader creates a header component.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// View renders the banner at the given width.
func (h *Header) View(width int) string {
	title := h.theme.HeaderTitle.Render("LIFE-OS PRIME")
	subtitle := h.theme.HeaderSubtitle.Render("personal orchestration layer")
	return h.theme.Header.Width(max(0, width-2)).Render(title + "  " + subtitle)
}
