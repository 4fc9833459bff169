// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat surface for the lifeos TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/conversation"
	"github.com/jeranaias/lifeos-tui/internal/ui/components"
	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat surface.
type State int

const (
	StateReady   State = iota // Ready for input
	StateLoading              // Send cycle in flight
)

// pollInterval is how often the surface re-reads service state while a
// cycle is in flight.
const pollInterval = 80 * time.Millisecond

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat surface. It renders snapshots
// of the conversation service and never mutates conversation state directly.
type Model struct {
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Domain service
	svc *conversation.Service

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	sidebar   *components.Sidebar
	header    *components.Header
	statusBar *components.StatusBar
	renderer  *components.BlockRenderer

	// Key bindings
	keyMap KeyMap

	// Display options
	showSidebar    bool
	showTimestamps bool

	// Transient notice above the input (export results, help)
	notice string

	// Greeting is auto-submitted once, on the first window size message.
	greeted bool
}

// New creates a chat surface backed by the given conversation service.
func New(svc *conversation.Service, cfg *config.Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Transmit to Life-OS..."
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	vp := viewport.New(80, 20)

	return Model{
		state:          StateReady,
		theme:          theme,
		svc:            svc,
		viewport:       vp,
		input:          input,
		spinner:        components.NewSpinner(theme),
		sidebar:        components.NewSidebar(theme),
		header:         components.NewHeader(theme),
		statusBar:      components.NewStatusBar(theme, cfg.Gateway.Model),
		renderer:       components.NewBlockRenderer(theme, 76),
		keyMap:         DefaultKeyMap(),
		showSidebar:    cfg.UI.ShowSidebar,
		showTimestamps: cfg.UI.ShowTimestamps,
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// CYCLE COMMANDS
// =============================================================================

// submitCmd runs a blocking send cycle in a goroutine.
func (m *Model) submitCmd(text string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return cycleDoneMsg{accepted: svc.Submit(context.Background(), text)}
	}
}

// triggerCmd runs a blocking trigger cycle in a goroutine.
func (m *Model) triggerCmd(kind conversation.TriggerKind) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return cycleDoneMsg{accepted: svc.Trigger(context.Background(), kind)}
	}
}

// greetCmd runs the automatic opening cycle in a goroutine.
func (m *Model) greetCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return cycleDoneMsg{accepted: svc.Greet(context.Background())}
	}
}

// pollCmd schedules the next in-flight display refresh.
func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// noticeCmd clears a transient notice after a few seconds.
func noticeCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}
