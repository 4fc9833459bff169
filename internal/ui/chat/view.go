// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lifeos-tui/internal/model"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat surface.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing neural link..."
	}

	var sections []string
	sections = append(sections, m.header.View(m.width))

	chatLog := m.viewport.View()
	if m.showSidebar {
		var hl *model.AgentID
		if id, ok := m.svc.Highlighted(); ok {
			hl = &id
		}
		side := m.sidebar.View(m.svc.UserState(), m.svc.Roster(), hl)
		chatLog = lipgloss.JoinHorizontal(lipgloss.Top, chatLog, side)
	}
	sections = append(sections, chatLog)

	if m.state == StateLoading {
		sections = append(sections, m.spinner.View())
	} else if m.notice != "" {
		sections = append(sections, m.notice)
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, m.theme.InputContainer.Width(m.width-2).Render(m.input.View()))
	sections = append(sections, m.statusBar.View(m.width, m.state == StateLoading))

	return strings.Join(sections, "\n")
}

// =============================================================================
// CONVERSATION RENDERING
// =============================================================================

// refreshViewport re-renders the conversation into the viewport.
func (m *Model) refreshViewport() {
	msgs := m.svc.Messages()

	var out []string
	for _, msg := range msgs {
		out = append(out, m.renderMessage(msg))
		out = append(out, "")
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(out, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders one message with its attribution line.
func (m *Model) renderMessage(msg model.Message) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName())
	if m.showTimestamps {
		label += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04:05"))
	}

	if msg.Role == model.RoleUser {
		body := m.theme.UserBubble.Render(msg.Text)
		return label + "\n" + body
	}

	// Model replies go through the mini-markup renderer.
	body := m.theme.ModelBubble.Render(m.renderer.Render(msg.Text))
	return label + "\n" + body
}
