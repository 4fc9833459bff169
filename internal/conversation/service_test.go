// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lifeos-tui/internal/agents"
	"github.com/jeranaias/lifeos-tui/internal/model"
)

// fakeGateway answers with a canned reply or error, optionally blocking
// until released so tests can observe the in-flight state.
type fakeGateway struct {
	mu      sync.Mutex
	reply   string
	err     error
	release chan struct{}
	calls   []string
	states  []model.UserState
	resets  int
}

func (f *fakeGateway) Send(ctx context.Context, text string, state model.UserState) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.states = append(f.states, state)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return f.reply, f.err
}

func (f *fakeGateway) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeGateway) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// instantAnimator completes the cosmetic branch immediately.
type instantAnimator struct{}

func (instantAnimator) Run(sink agents.StatusSink) {
	sink.SetAgentStatus(model.AgentAlpha, model.AgentAnalyzing)
	sink.SetHighlight(model.AgentAlpha)
	sink.SetAgentStatus(model.AgentAlpha, model.AgentIdle)
	sink.ClearHighlight()
}

func newTestService(gw *fakeGateway) *Service {
	return NewService(gw, instantAnimator{})
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_EmptyInputIsNoOp(t *testing.T) {
	gw := &fakeGateway{reply: "hi"}
	svc := newTestService(gw)

	assert.False(t, svc.Submit(context.Background(), ""))
	assert.False(t, svc.Submit(context.Background(), "   "))
	assert.False(t, svc.Submit(context.Background(), " \t\n "))

	assert.Empty(t, svc.Messages())
	assert.False(t, svc.Loading())
	assert.Zero(t, gw.callCount())
}

func TestSubmit_EndToEnd(t *testing.T) {
	gw := &fakeGateway{reply: "### Status\nAll systems nominal"}
	svc := newTestService(gw)

	ok := svc.Submit(context.Background(), "hello")
	require.True(t, ok)

	msgs := svc.Messages()
	require.Len(t, msgs, 2)

	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Empty(t, string(msgs[0].Agent))

	assert.Equal(t, model.RoleModel, msgs[1].Role)
	assert.Equal(t, gw.reply, msgs[1].Text)
	assert.Equal(t, model.AgentOrchestrator, msgs[1].Agent)

	assert.False(t, svc.Loading())
	for _, a := range svc.Roster() {
		assert.Equal(t, model.AgentIdle, a.Status)
	}
	_, highlighted := svc.Highlighted()
	assert.False(t, highlighted)
}

func TestSubmit_LoadingDuringFlight(t *testing.T) {
	gw := &fakeGateway{reply: "ok", release: make(chan struct{})}
	svc := newTestService(gw)

	done := make(chan bool)
	go func() {
		done <- svc.Submit(context.Background(), "hello")
	}()

	// Wait until the cycle is visibly in flight.
	require.Eventually(t, svc.Loading, time.Second, time.Millisecond)

	// The user message is appended immediately, before settlement.
	msgs := svc.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleUser, msgs[0].Role)

	close(gw.release)
	assert.True(t, <-done)
	assert.False(t, svc.Loading())
	assert.Len(t, svc.Messages(), 2)
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	gw := &fakeGateway{reply: "ok", release: make(chan struct{})}
	svc := newTestService(gw)

	done := make(chan bool)
	go func() {
		done <- svc.Submit(context.Background(), "first")
	}()
	require.Eventually(t, svc.Loading, time.Second, time.Millisecond)

	// A second submission mid-cycle is rejected, not queued.
	assert.False(t, svc.Submit(context.Background(), "second"))

	close(gw.release)
	require.True(t, <-done)

	// Exactly one accepted submission: one user + one model message.
	assert.Len(t, svc.Messages(), 2)
	assert.Equal(t, 1, gw.callCount())
}

func TestSubmit_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	svc := newTestService(gw)

	require.True(t, svc.Submit(context.Background(), "hello"))

	msgs := svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ErrorReplyText, msgs[1].Text)
	assert.Equal(t, model.AgentOrchestrator, msgs[1].Agent)
	// Raw error text never reaches the log shown to the user.
	assert.NotContains(t, msgs[1].Text, "connection refused")

	assert.False(t, svc.Loading())
	for _, a := range svc.Roster() {
		assert.Equal(t, model.AgentIdle, a.Status)
	}
}

func TestSubmit_ResubmitPossibleAfterFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("boom")}
	svc := newTestService(gw)

	require.True(t, svc.Submit(context.Background(), "first"))

	gw.mu.Lock()
	gw.err = nil
	gw.reply = "recovered"
	gw.mu.Unlock()

	require.True(t, svc.Submit(context.Background(), "second"))

	msgs := svc.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "recovered", msgs[3].Text)
}

func TestSubmit_JoinsAnimationBranch(t *testing.T) {
	// Even with an instant gateway reply, the cycle must not settle
	// before the animation walk finishes.
	walkDone := make(chan struct{})
	animator := funcAnimator(func(sink agents.StatusSink) {
		<-walkDone
		sink.ClearHighlight()
	})

	gw := &fakeGateway{reply: "fast"}
	svc := NewService(gw, animator)

	done := make(chan bool)
	go func() {
		done <- svc.Submit(context.Background(), "hello")
	}()

	require.Eventually(t, func() bool { return gw.callCount() == 1 }, time.Second, time.Millisecond)

	// The gateway settled but the walk has not: still loading.
	assert.True(t, svc.Loading())
	assert.Len(t, svc.Messages(), 1)

	close(walkDone)
	require.True(t, <-done)
	assert.Len(t, svc.Messages(), 2)
}

type funcAnimator func(agents.StatusSink)

func (f funcAnimator) Run(sink agents.StatusSink) { f(sink) }

// =============================================================================
// TRIGGER TESTS
// =============================================================================

func TestTrigger_Stress(t *testing.T) {
	gw := &fakeGateway{reply: "empathy deployed"}
	svc := newTestService(gw)

	require.True(t, svc.Trigger(context.Background(), TriggerStress))

	state := svc.UserState()
	assert.Equal(t, 9, state.StressLevel)
	// Other fields stay at baseline.
	assert.Equal(t, 1.2, state.PortfolioDrift)
	assert.Equal(t, 88, state.HealthScore)

	msgs := svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, TriggerStress.AlertText(), msgs[0].Text)
}

func TestTrigger_FieldSeverities(t *testing.T) {
	tests := []struct {
		kind  TriggerKind
		check func(t *testing.T, s model.UserState)
	}{
		{TriggerStress, func(t *testing.T, s model.UserState) {
			assert.Equal(t, 9, s.StressLevel)
		}},
		{TriggerWealth, func(t *testing.T, s model.UserState) {
			assert.Equal(t, 8.5, s.PortfolioDrift)
		}},
		{TriggerHealth, func(t *testing.T, s model.UserState) {
			assert.Equal(t, 65, s.HealthScore)
		}},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			svc := newTestService(&fakeGateway{reply: "ok"})
			require.True(t, svc.Trigger(context.Background(), tc.kind))
			tc.check(t, svc.UserState())
		})
	}
}

func TestTrigger_UnknownKind(t *testing.T) {
	svc := newTestService(&fakeGateway{reply: "ok"})
	assert.False(t, svc.Trigger(context.Background(), TriggerKind("solar-flare")))
	assert.Empty(t, svc.Messages())
}

func TestTrigger_SnapshotSentWithCurrentState(t *testing.T) {
	// The gateway receives the state as of the submit; whether it embeds
	// it is the gateway's one-time-snapshot concern, not ours.
	gw := &fakeGateway{reply: "ok"}
	svc := newTestService(gw)

	require.True(t, svc.Trigger(context.Background(), TriggerStress))

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Len(t, gw.states, 1)
	assert.Equal(t, 9, gw.states[0].StressLevel)
}

// =============================================================================
// MISC STATE TESTS
// =============================================================================

func TestGreet(t *testing.T) {
	gw := &fakeGateway{reply: "All systems nominal."}
	svc := newTestService(gw)

	require.True(t, svc.Greet(context.Background()))
	msgs := svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, GreetingText, msgs[0].Text)
}

func TestPendingInput_ClearedOnSubmit(t *testing.T) {
	svc := newTestService(&fakeGateway{reply: "ok"})

	svc.SetPendingInput("draft text")
	assert.Equal(t, "draft text", svc.PendingInput())

	require.True(t, svc.Submit(context.Background(), "draft text"))
	assert.Empty(t, svc.PendingInput())
}

func TestReset(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc := newTestService(gw)
	require.True(t, svc.Submit(context.Background(), "hello"))
	require.Len(t, svc.Messages(), 2)

	require.True(t, svc.Reset())
	assert.Empty(t, svc.Messages())
	// The gateway session is dropped with the log, so the model starts
	// over along with the user.
	assert.Equal(t, 1, gw.resetCount())
}

func TestReset_RejectedWhileInFlight(t *testing.T) {
	gw := &fakeGateway{reply: "ok", release: make(chan struct{})}
	svc := newTestService(gw)

	done := make(chan bool)
	go func() {
		done <- svc.Submit(context.Background(), "hello")
	}()
	require.Eventually(t, svc.Loading, time.Second, time.Millisecond)

	assert.False(t, svc.Reset())
	assert.Zero(t, gw.resetCount())

	close(gw.release)
	<-done
}
