// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the lifeos TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Blue - Strategy agent, user highlights, links
var Blue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

// Emerald - Health agent, success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}

// Amber - Wealth agent, warnings, drift alerts
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

// Cyan - Orchestrator accent, prompts, shortcut keys
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, system alerts, stress spikes
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for alert backgrounds
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, table rules
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, agent roles, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, idle agents
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE COLORS
// =============================================================================

// User message - blue tones
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Orchestrator reply - soft cyan tones
var ModelBubbleFg = lipgloss.AdaptiveColor{Light: "#164E63", Dark: "#CFFAFE"}
var ModelBubbleBorder = lipgloss.AdaptiveColor{Light: "#22D3EE", Dark: "#0E7490"}

// =============================================================================
// AGENT COLORS
// =============================================================================

// AgentColor maps the accent hex carried by the roster onto an adaptive
// color. Unknown values fall back to the secondary text color.
func AgentColor(hex string) lipgloss.AdaptiveColor {
	switch hex {
	case "#3b82f6":
		return Blue
	case "#10b981":
		return Emerald
	case "#f59e0b":
		return Amber
	default:
		return TextSecondary
	}
}
