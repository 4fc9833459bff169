// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// user vitals, and the simulated agent roster.
package model

// =============================================================================
// AGENT IDENTITY
// =============================================================================

// AgentID identifies one of the named agents.
type AgentID string

const (
	// AgentAlpha is the Chief of Staff: triage, scheduling, tone matching.
	AgentAlpha AgentID = "Alpha"

	// AgentCaduceus is the Clinical Guardian: health and mental-state analysis.
	AgentCaduceus AgentID = "Caduceus"

	// AgentLedger is the Wealth Architect: portfolio and legal analysis.
	AgentLedger AgentID = "Ledger"

	// AgentOrchestrator is the coordinating persona. It never appears in the
	// animated roster; it is the attribution on model-authored messages.
	AgentOrchestrator AgentID = "Orchestrator"
)

// =============================================================================
// AGENT STATUS
// =============================================================================

// AgentState is the lifecycle state of a simulated agent.
type AgentState string

const (
	AgentIdle      AgentState = "idle"
	AgentAnalyzing AgentState = "analyzing"
	AgentActive    AgentState = "active"
)

// AgentStatus describes one simulated worker in the sidebar roster.
// The roster is purely cosmetic: it animates during a send cycle and
// carries no data into the conversation beyond the highlighted agent id.
type AgentStatus struct {
	ID     AgentID    `json:"id"`
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	Status AgentState `json:"status"`
	Color  string     `json:"color"`
}

// DefaultRoster returns the fixed 3-member roster, all idle.
// The slice order is the order the animation walks the agents.
func DefaultRoster() []*AgentStatus {
	return []*AgentStatus{
		{ID: AgentAlpha, Name: "Agent Alpha", Role: "Chief of Staff", Status: AgentIdle, Color: "#3b82f6"},
		{ID: AgentCaduceus, Name: "Agent Caduceus", Role: "Clinical Guardian", Status: AgentIdle, Color: "#10b981"},
		{ID: AgentLedger, Name: "Agent Ledger", Role: "Wealth Architect", Status: AgentIdle, Color: "#f59e0b"},
	}
}
