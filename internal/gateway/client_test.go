// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a server answering generateContent with the given
// handler, and a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-api-key").WithBaseURL(server.URL)
	return server, client
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]string{{"text": text}},
				}},
			},
		})
	}
}

// =============================================================================
// GENERATE TESTS
// =============================================================================

func TestGenerate_RequestShape(t *testing.T) {
	var got generateRequest
	var path, key string

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		replyWith("ok")(w, r)
	})

	history := []Content{NewUserTurn("hello")}
	reply, err := client.Generate(context.Background(), "persona", history)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	assert.Equal(t, "/models/"+DefaultModel+":generateContent", path)
	assert.Equal(t, "test-api-key", key)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "persona", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "hello", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, DefaultTemperature, got.GenerationConfig.Temperature)
	assert.Equal(t, DefaultMaxOutputTokens, got.GenerationConfig.MaxOutputTokens)
}

func TestGenerate_MissingKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Generate(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"auth failure", http.StatusUnauthorized, `{"error":{"code":401,"status":"UNAUTHENTICATED","message":"bad key"}}`},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`},
		{"server error", http.StatusInternalServerError, `boom`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Generate(context.Background(), "", []Content{NewUserTurn("hi")})
			assert.ErrorIs(t, err, ErrGateway)
		})
	}
}

func TestGenerate_NoRetry(t *testing.T) {
	// A failed call must surface exactly once; retries are the user's job.
	var calls atomic.Int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Generate(context.Background(), "", []Content{NewUserTurn("hi")})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_EmptyReplyIsError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), "", []Content{NewUserTurn("hi")})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestGenerate_MalformedBodyIsError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Generate(context.Background(), "", []Content{NewUserTurn("hi")})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestAPIKeyMasked(t *testing.T) {
	assert.Equal(t, "[not set]", NewClient("").APIKeyMasked())

	masked := NewClient("super-secret-key").APIKeyMasked()
	assert.NotContains(t, masked, "super-secret-key")
	assert.Contains(t, masked, "REDACTED")
}
