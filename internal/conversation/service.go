// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the chat state machine: the append-only
// message log, the single in-flight send cycle, and the alert triggers.
//
// A send cycle fans out two operations, the cosmetic agent walk and the
// real gateway call, and joins them before settling. The join (not a
// race) guarantees the animation is never cut short by a fast reply and
// never left running after the reply is displayed.
package conversation

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/lifeos-tui/internal/agents"
	"github.com/jeranaias/lifeos-tui/internal/model"
)

// ErrorReplyText is the fixed in-band message shown for any gateway or
// credential failure. The underlying error goes to the log, never to the
// user, and nothing is retried automatically.
const ErrorReplyText = "> **SYSTEM ERROR**: Neural Link disrupted. Retrying connection..."

// GreetingText is auto-submitted when a fresh chat surface opens.
const GreetingText = "System Initialized. Status Report?"

// =============================================================================
// TRIGGERS
// =============================================================================

// TriggerKind identifies a synthesized alert event.
type TriggerKind string

const (
	TriggerStress TriggerKind = "stress"
	TriggerWealth TriggerKind = "wealth"
	TriggerHealth TriggerKind = "health"
)

// Fixed alert payloads, one per trigger kind.
const (
	stressAlertText = "[SYSTEM ALERT]: BIOMETRIC SENSORS DETECT CORTISOL SPIKE (LEVEL 9). INITIATE EMPATHY PROTOCOL IMMEDIATELY."
	wealthAlertText = "[SYSTEM ALERT]: MARKET VOLATILITY DETECTED. PORTFOLIO DRIFT > 5%. INITIATE WEALTH GUARD."
	healthAlertText = "[SYSTEM ALERT]: SLEEP QUALITY CRITICAL. HRV LOW. INITIATE CLINICAL SCOUT."
)

// AlertText returns the fixed synthesized message for a trigger kind.
func (k TriggerKind) AlertText() string {
	switch k {
	case TriggerStress:
		return stressAlertText
	case TriggerWealth:
		return wealthAlertText
	case TriggerHealth:
		return healthAlertText
	default:
		return ""
	}
}

// =============================================================================
// COLLABORATOR CONTRACTS
// =============================================================================

// Gateway is the outbound half of a send cycle. Reset drops whatever
// session state the gateway holds so a cleared conversation starts over
// on the model side too.
type Gateway interface {
	Send(ctx context.Context, text string, state model.UserState) (string, error)
	Reset()
}

// Animator is the cosmetic half of a send cycle.
type Animator interface {
	Run(sink agents.StatusSink)
}

// =============================================================================
// SERVICE
// =============================================================================

// Service owns one conversation, the user vitals, and the agent roster.
// All exported methods are safe for concurrent use; accessors return
// copies so callers can render without holding the service lock.
type Service struct {
	mu     sync.Mutex
	conv   *model.Conversation
	user   model.UserState
	roster []*model.AgentStatus

	gateway  Gateway
	animator Animator
}

// NewService creates a service with the baseline user state, an empty
// conversation, and the default roster.
func NewService(gateway Gateway, animator Animator) *Service {
	if animator == nil {
		animator = agents.NewController()
	}
	return &Service{
		conv:     model.NewConversation(),
		user:     model.NewUserState(),
		roster:   model.DefaultRoster(),
		gateway:  gateway,
		animator: animator,
	}
}

// =============================================================================
// SEND CYCLE
// =============================================================================

// Submit runs one full send cycle and blocks until it settles. It returns
// false without side effects when the text trims to empty or a cycle is
// already in flight (back-pressure by rejection, not queueing).
func (s *Service) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.conv.Loading {
		s.mu.Unlock()
		return false
	}
	s.conv.AddUserMessage(text)
	s.conv.PendingInput = ""
	s.conv.Loading = true
	state := s.user
	s.mu.Unlock()

	// Fan out the animation walk and the real call, then join. No branch
	// is ever cancelled; the cycle always runs both to completion.
	var (
		wg      sync.WaitGroup
		reply   string
		sendErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.animator.Run(s)
	}()
	go func() {
		defer wg.Done()
		reply, sendErr = s.gateway.Send(ctx, text, state)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if sendErr != nil {
		log.Printf("send cycle failed: %v", sendErr)
		s.conv.AddModelMessage(ErrorReplyText, model.AgentOrchestrator)
	} else {
		s.conv.AddModelMessage(reply, model.AgentOrchestrator)
	}

	s.conv.Loading = false
	s.conv.Highlighted = nil
	for _, a := range s.roster {
		a.Status = model.AgentIdle
	}
	return true
}

// Trigger translates a discrete alert event into a user-state overwrite
// plus a synthesized message fed through the normal submit path.
//
// The state mutation happens even when the submit is rejected mid-cycle,
// and it is not re-embedded into the gateway's session snapshot; only the
// alert text reaches the model.
func (s *Service) Trigger(ctx context.Context, kind TriggerKind) bool {
	text := kind.AlertText()
	if text == "" {
		return false
	}

	s.mu.Lock()
	switch kind {
	case TriggerStress:
		s.user.StressLevel = 9
	case TriggerWealth:
		s.user.PortfolioDrift = 8.5
	case TriggerHealth:
		s.user.HealthScore = 65
	}
	s.mu.Unlock()

	return s.Submit(ctx, text)
}

// Greet submits the automatic opening message.
func (s *Service) Greet(ctx context.Context) bool {
	return s.Submit(ctx, GreetingText)
}

// =============================================================================
// STATUS SINK (animation callbacks)
// =============================================================================

// SetAgentStatus implements agents.StatusSink.
func (s *Service) SetAgentStatus(id model.AgentID, status model.AgentState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.roster {
		if a.ID == id {
			a.Status = status
			return
		}
	}
}

// SetHighlight implements agents.StatusSink.
func (s *Service) SetHighlight(id model.AgentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Highlighted = &id
}

// ClearHighlight implements agents.StatusSink.
func (s *Service) ClearHighlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Highlighted = nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Loading reports whether a send cycle is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Loading
}

// Messages returns a snapshot copy of the log.
func (s *Service) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.conv.History()
	out := make([]model.Message, 0, len(history))
	for _, m := range history {
		out = append(out, *m)
	}
	return out
}

// UserState returns the current vitals.
func (s *Service) UserState() model.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Roster returns a snapshot copy of the agent roster.
func (s *Service) Roster() []model.AgentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AgentStatus, 0, len(s.roster))
	for _, a := range s.roster {
		out = append(out, *a)
	}
	return out
}

// Highlighted returns the currently highlighted agent, if any.
func (s *Service) Highlighted() (model.AgentID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conv.Highlighted == nil {
		return "", false
	}
	return *s.conv.Highlighted, true
}

// PendingInput returns the not-yet-submitted buffer.
func (s *Service) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.PendingInput
}

// SetPendingInput updates the not-yet-submitted buffer.
func (s *Service) SetPendingInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.PendingInput = text
}

// Reset starts a fresh conversation and drops the gateway session, so
// the model's context matches the cleared log. Rejected mid-cycle so an
// in-flight reply can never land in a log it did not start in.
func (s *Service) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conv.Loading {
		return false
	}
	s.conv = model.NewConversation()
	s.gateway.Reset()
	return true
}
