// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agents drives the cosmetic "parallel sprint" animation over the
// simulated agent roster.
//
// The walk runs concurrently with the real gateway call purely for visual
// pacing. It carries no information back to the caller except through the
// highlighted-agent state, and it is never cancelled: once started it runs
// to completion so every send cycle has a minimum visible duration.
package agents

import (
	"math/rand"
	"time"

	"github.com/jeranaias/lifeos-tui/internal/model"
)

// Walk timing constants.
const (
	// activateChance is the probability a roster member animates at all.
	activateChance = 0.7

	// stepDelayMin is the minimum time a member stays in "analyzing".
	stepDelayMin = 600 * time.Millisecond

	// stepDelayJitter is the additional randomized delay, so each animated
	// step lasts [600ms, 1400ms).
	stepDelayJitter = 800 * time.Millisecond
)

// =============================================================================
// STATUS SINK
// =============================================================================

// StatusSink receives the roster mutations produced by a walk. The
// conversation service implements it with its own locking.
type StatusSink interface {
	// SetAgentStatus moves one roster member to a new state.
	SetAgentStatus(id model.AgentID, status model.AgentState)

	// SetHighlight marks the agent currently shown as "analyzing".
	SetHighlight(id model.AgentID)

	// ClearHighlight removes the highlight.
	ClearHighlight()
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller performs the randomized sequential walk over a fixed roster
// order.
type Controller struct {
	order []model.AgentID
	rng   *rand.Rand

	// sleep is injectable so tests can run the walk instantly.
	sleep func(time.Duration)
}

// NewController creates a controller walking the default roster order.
func NewController() *Controller {
	return &Controller{
		order: []model.AgentID{model.AgentAlpha, model.AgentCaduceus, model.AgentLedger},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}
}

// WithRand sets the random source. Used by tests for determinism.
func (c *Controller) WithRand(rng *rand.Rand) *Controller {
	c.rng = rng
	return c
}

// WithSleep sets the sleep function. Used by tests to skip real delays.
func (c *Controller) WithSleep(sleep func(time.Duration)) *Controller {
	c.sleep = sleep
	return c
}

// Run walks the roster once in fixed order. Each member animates with
// probability 0.7: it is marked analyzing, highlighted, held for a
// randomized interval, then returned to idle. Skipped members see no state
// change and no delay. The highlight is cleared after the roster is
// exhausted.
func (c *Controller) Run(sink StatusSink) {
	for _, id := range c.order {
		if c.rng.Float64() >= activateChance {
			continue
		}

		sink.SetAgentStatus(id, model.AgentAnalyzing)
		sink.SetHighlight(id)

		delay := stepDelayMin + time.Duration(c.rng.Float64()*float64(stepDelayJitter))
		c.sleep(delay)

		sink.SetAgentStatus(id, model.AgentIdle)
	}

	sink.ClearHighlight()
}
