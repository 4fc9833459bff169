// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lifeos-tui/internal/conversation"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all Bubble Tea messages for the chat surface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		// First layout pass: open the conversation with the automatic
		// status-report greeting.
		if !m.greeted {
			m.greeted = true
			m.state = StateLoading
			cmds = append(cmds, m.greetCmd(), m.spinner.Start(), pollCmd())
		}
		m.refreshViewport()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case cycleDoneMsg:
		// A rejected cycle settles without touching loading state; the
		// authoritative flag is the service's.
		m.refreshViewport()
		m.viewport.GotoBottom()
		if !m.svc.Loading() {
			m.state = StateReady
			m.spinner.Stop()
		}
		if !msg.accepted {
			m.notice = "Link busy: vitals updated, alert not transmitted"
			return m, noticeCmd()
		}
		return m, nil

	case pollTickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.refreshViewport()
		return m, pollCmd()

	case exportDoneMsg:
		if msg.err != nil {
			m.notice = m.theme.ErrorTitle.Render("Export failed: " + msg.err.Error())
		} else {
			m.notice = "Transcript saved to " + msg.path
		}
		return m, noticeCmd()

	case statusNoticeMsg:
		m.notice = msg.text
		return m, noticeCmd()

	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	// Spinner animation frames
	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)
	cmds = append(cmds, spinnerCmd)

	// Input field
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.svc.SetPendingInput(m.input.Value())
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.showSidebar = !m.showSidebar
		m.resize(m.width, m.height)
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	// Triggers fire even while a cycle is in flight: the vitals overwrite
	// lands immediately, the synthesized submit is simply rejected.
	case key.Matches(msg, m.keyMap.StressAlert):
		return m.startTrigger(conversation.TriggerStress)
	case key.Matches(msg, m.keyMap.WealthAlert):
		return m.startTrigger(conversation.TriggerWealth)
	case key.Matches(msg, m.keyMap.HealthAlert):
		return m.startTrigger(conversation.TriggerHealth)

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	// Everything else flows into the input field.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.SetPendingInput(m.input.Value())
	return m, cmd
}

// handleSubmit processes Enter: slash commands locally, everything else
// through a send cycle.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		m.svc.SetPendingInput("")
		return m.handleCommand(text)
	}

	if m.state == StateLoading {
		// Rejection, not queueing. The typed text stays in the input.
		return m, nil
	}

	m.input.SetValue("")
	m.svc.SetPendingInput("")
	m.state = StateLoading
	m.refreshViewport()
	return m, tea.Batch(m.submitCmd(text), m.spinner.Start(), pollCmd())
}

// startTrigger launches a trigger cycle.
func (m Model) startTrigger(kind conversation.TriggerKind) (tea.Model, tea.Cmd) {
	if m.state == StateLoading {
		// The service still applies the vitals overwrite before rejecting.
		return m, m.triggerCmd(kind)
	}
	m.state = StateLoading
	return m, tea.Batch(m.triggerCmd(kind), m.spinner.Start(), pollCmd())
}

// handleCommand executes a local slash command.
func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(text)[0]) {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/clear":
		if !m.svc.Reset() {
			return m, func() tea.Msg {
				return statusNoticeMsg{text: "Cannot clear while a cycle is in flight"}
			}
		}
		m.refreshViewport()
		return m, func() tea.Msg {
			return statusNoticeMsg{text: "Conversation cleared"}
		}

	case "/export":
		msgs := m.svc.Messages()
		return m, func() tea.Msg {
			path, err := ExportTranscript(msgs)
			return exportDoneMsg{path: path, err: err}
		}

	case "/help":
		return m, func() tea.Msg {
			return statusNoticeMsg{text: "Commands: /export /clear /help /quit | F1 stress F2 wealth F3 health | C-b sidebar"}
		}

	default:
		return m, func() tea.Msg {
			return statusNoticeMsg{text: "Unknown command: " + text}
		}
	}
}

// resize recomputes component dimensions.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = m.sidebar.Width()
	}

	contentWidth := width - sidebarWidth - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	// Header, spinner line, input, status bar
	chrome := 7
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = vpHeight
	m.input.Width = width - 6
	m.renderer.SetWidth(contentWidth - 4)
}
