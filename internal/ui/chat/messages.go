// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat surface for the lifeos TUI.
//
// This file defines the Bubble Tea message types used by the surface. The
// conversation service blocks for the full send cycle (animation walk joined
// with the network call), so cycles run inside tea.Cmd goroutines and report
// back with cycleDoneMsg while pollTickMsg keeps the roster display fresh.
package chat

// =============================================================================
// CYCLE MESSAGES
// =============================================================================

// cycleDoneMsg reports that a blocking send cycle returned. accepted is
// false when the service rejected the submission, which happens for
// trigger cycles fired while another cycle is in flight.
type cycleDoneMsg struct {
	accepted bool
}

// pollTickMsg drives periodic re-renders while a cycle is in flight, so the
// sidebar reflects agent highlights mutated from the animation goroutine.
type pollTickMsg struct{}

// =============================================================================
// COMMAND MESSAGES
// =============================================================================

// exportDoneMsg reports a transcript export result.
type exportDoneMsg struct {
	path string
	err  error
}

// statusNoticeMsg shows a transient line above the input.
type statusNoticeMsg struct {
	text string
}

// clearNoticeMsg hides the transient line again.
type clearNoticeMsg struct{}
