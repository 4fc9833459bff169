// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// user vitals, and the simulated agent roster.
package model

// =============================================================================
// USER STATE
// =============================================================================

// UserState is the small numeric vector of user vitals the persona prompt
// is seeded with. It lives for one process and is never persisted.
//
// It only moves through explicit alert triggers; nothing the model says
// conversationally is written back into it.
type UserState struct {
	// StressLevel is on a 0-10 scale.
	StressLevel int `json:"stress_level"`

	// PortfolioDrift is a percentage, unbounded above 0.
	PortfolioDrift float64 `json:"portfolio_drift"`

	// HealthScore is on a 0-100 scale.
	HealthScore int `json:"health_score"`
}

// NewUserState returns the neutral baseline used at session start.
func NewUserState() UserState {
	return UserState{
		StressLevel:    4,
		PortfolioDrift: 1.2,
		HealthScore:    88,
	}
}
