// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway owns the single outbound conversational session to the
// hosted model.
//
// The client half of the package speaks the Gemini generateContent API.
// There is deliberately no retry and no local timeout beyond the HTTP
// client's own: a failed call surfaces once and settles the send cycle.
package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL for the Gemini API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTimeout is the HTTP client timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultTemperature matches the session defaults of the hosted chat.
	DefaultTemperature = 0.7

	// DefaultMaxOutputTokens caps the reply length.
	DefaultMaxOutputTokens = 2000

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// Error variables for gateway failures.
var (
	// ErrNotConfigured indicates the API key is not set. Raised at first
	// gateway use, not at process start.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrGateway covers any failure from the external call: network,
	// auth, rate limit, malformed response.
	ErrGateway = errors.New("gateway request failed")
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Part is one piece of content in a turn.
type Part struct {
	Text string `json:"text"`
}

// Content is one conversational turn, role "user" or "model".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// NewUserTurn creates a user-role turn.
func NewUserTurn(text string) Content {
	return Content{Role: "user", Parts: []Part{{Text: text}}}
}

// NewModelTurn creates a model-role turn.
func NewModelTurn(text string) Content {
	return Content{Role: "model", Parts: []Part{{Text: text}}}
}

// GenerationConfig tunes the generation request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateRequest is the request body for the generateContent endpoint.
type generateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// generateResponse is the response body from the generateContent endpoint.
type generateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Text returns the concatenated text of the first candidate, or "".
func (r *generateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// apiErrorResponse represents an error response from the API.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is an HTTP client for the Gemini generateContent API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client

	// limiter paces outbound requests so a burst of triggers cannot
	// hammer the endpoint.
	limiter *rate.Limiter

	generation GenerationConfig
}

// NewClient creates a new Gemini client with the given API key.
//
// If the key is empty the client is still created; Generate calls fail
// with ErrNotConfigured. This keeps credential failures in-band per send
// cycle instead of fatal at startup.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		generation: GenerationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model used for generation requests.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked identifier of the API key for display.
// SECURITY: Never exposes key fragments, only a hash fingerprint.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), hex.EncodeToString(h[:4]))
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate sends a single generateContent request carrying the system
// instruction and the full turn history, and returns the reply text.
//
// There is no retry: any transport or API failure is wrapped in ErrGateway
// and returned once. The caller decides what the user sees.
func (c *Client) Generate(ctx context.Context, system string, history []Content) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	reqBody := generateRequest{
		Contents:         history,
		GenerationConfig: &c.generation,
	}
	if system != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{{Text: system}}}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrGateway, err)
	}

	url := c.baseURL + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear the key header immediately after the request so it
	// can never reach a log line.
	req.Header.Del("x-goog-api-key")

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.handleErrorResponse(resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrGateway, err)
	}

	text := genResp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", ErrGateway)
	}
	return text, nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response: %v", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses into gateway errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("%w: HTTP %d %s: %s", ErrGateway, statusCode, apiErr.Error.Status, apiErr.Error.Message)
	}
	return fmt.Errorf("%w: HTTP %d", ErrGateway, statusCode)
}

// logRequest logs an API request path without headers or body.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("gateway request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration, never the response body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("gateway response: %d (%v)", resp.StatusCode, duration)
}
