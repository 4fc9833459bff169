// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lifeos-tui/internal/agents"
	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/conversation"
	"github.com/jeranaias/lifeos-tui/internal/model"
)

type stubGateway struct{}

func (stubGateway) Send(ctx context.Context, text string, state model.UserState) (string, error) {
	return "ok", nil
}

func (stubGateway) Reset() {}

type noopAnimator struct{}

func (noopAnimator) Run(agents.StatusSink) {}

func newTestModel(t *testing.T) Model {
	t.Helper()
	svc := conversation.NewService(stubGateway{}, noopAnimator{})
	m := New(svc, config.Default())
	m.resize(100, 30)
	return m
}

func TestUpdate_RejectedCycleShowsNotice(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(cycleDoneMsg{accepted: false})
	got := updated.(Model)

	assert.Contains(t, got.notice, "Link busy")
	// The notice clears itself after a delay.
	require.NotNil(t, cmd)
}

func TestUpdate_AcceptedCycleLeavesNoticeEmpty(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(cycleDoneMsg{accepted: true})
	got := updated.(Model)

	assert.Empty(t, got.notice)
	assert.Equal(t, StateReady, got.state)
}

func TestUpdate_ClearNotice(t *testing.T) {
	m := newTestModel(t)
	m.notice = "something"

	updated, _ := m.Update(clearNoticeMsg{})
	assert.Empty(t, updated.(Model).notice)
}

var _ tea.Model = Model{}
