// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway owns the single outbound conversational session to the
// hosted model.
package gateway

import (
	"context"
	"log"
	"sync"

	"github.com/jeranaias/lifeos-tui/internal/model"
)

// =============================================================================
// SESSION
// =============================================================================

// session is the opaque handle for an ongoing conversation: the rendered
// persona instruction plus the accumulated turn history.
type session struct {
	system  string
	history []Content
}

// send forwards text to the model with the session's full history. The
// user turn and the reply are committed to history only on success, so a
// failed call leaves the session exactly as it was.
func (s *session) send(ctx context.Context, client *Client, text string) (string, error) {
	turn := NewUserTurn(text)

	reply, err := client.Generate(ctx, s.system, append(s.history, turn))
	if err != nil {
		return "", err
	}

	s.history = append(s.history, turn, NewModelTurn(reply))
	return reply, nil
}

// =============================================================================
// GATEWAY
// =============================================================================

// Gateway lazily creates and owns at most one session at a time. It is
// the only path the rest of the program uses to talk to the model.
type Gateway struct {
	mu      sync.Mutex
	client  *Client
	session *session
}

// New creates a gateway around the given client. No session exists until
// the first EnsureSession or Send call.
func New(client *Client) *Gateway {
	return &Gateway{client: client}
}

// EnsureSession constructs the session if none exists, embedding a
// point-in-time snapshot of the user state into the persona instruction.
// Subsequent calls return the existing session unchanged: the embedded
// snapshot is NOT refreshed. That staleness matches the original product
// behavior and is relied on by tests; do not "fix" it here.
func (g *Gateway) EnsureSession(state model.UserState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ensureSessionLocked(state)
}

func (g *Gateway) ensureSessionLocked(state model.UserState) error {
	if g.session != nil {
		return nil
	}
	if !g.client.IsConfigured() {
		return ErrNotConfigured
	}

	system, err := renderPersona(state)
	if err != nil {
		return err
	}

	g.session = &session{system: system}
	log.Printf("gateway session created (model=%s, key=%s)", g.client.Model(), g.client.APIKeyMasked())
	return nil
}

// Reset drops the session. The next Send lazily creates a fresh one, so
// the model sees none of the pre-reset history and the persona snapshot
// is re-rendered from the user state supplied at that point.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil {
		g.session = nil
		log.Printf("gateway session dropped")
	}
}

// HasSession reports whether the lazy session has been created.
func (g *Gateway) HasSession() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session != nil
}

// Send ensures a session exists (bound to whatever user state is supplied
// at first call) and forwards text to the model, returning its reply.
//
// All failures, session creation included, surface as a single error with
// no internal retry. The serialization through the gateway mutex means at
// most one outbound call is in flight, which matches the one-send-cycle
// invariant of the conversation layer.
func (g *Gateway) Send(ctx context.Context, text string, state model.UserState) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.ensureSessionLocked(state); err != nil {
		return "", err
	}
	return g.session.send(ctx, g.client, text)
}
