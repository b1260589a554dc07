// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api implements the HTTP client for the ResearchLens analysis
// backend. The backend performs the paper retrieval, trend scoring, and
// proposal generation; this client only speaks its wire contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/researchlens/internal/httputil"
	"github.com/pdiddy/researchlens/pkg/types"
)

// DefaultBaseURL is the backend root used when configuration is silent.
const DefaultBaseURL = "http://localhost:5000"

// Topic length bounds enforced by the backend; checked client-side so a
// bad topic never costs a round trip.
const (
	minTopicLength = 3
	maxTopicLength = 200
)

// APIError is a structured error decoded from the backend's error envelope.
type APIError struct {
	// StatusCode is the HTTP status of the failing response.
	StatusCode int

	// Message is the backend's error text.
	Message string

	// Suggestion is the backend's recovery hint, when present.
	Suggestion string
}

func (e *APIError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("backend returned HTTP %d: %s (%s)", e.StatusCode, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to one ResearchLens backend instance. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
}

// NewClient builds a backend client from configuration. Zero-value config
// fields fall back to defaults.
func NewClient(cfg types.APIConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// ValidateTopic applies the backend's topic rules: trimmed, 3 to 200
// characters. It returns the normalized topic.
func ValidateTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if len(topic) < minTopicLength {
		return "", fmt.Errorf("topic must be at least %d characters", minTopicLength)
	}
	if len(topic) > maxTopicLength {
		return "", fmt.Errorf("topic must be less than %d characters", maxTopicLength)
	}
	return topic, nil
}

// Analyze submits a topic for analysis and returns the trend statistics,
// candidate insights, and reference list.
func (c *Client) Analyze(ctx context.Context, topic string) (*types.AnalysisResult, error) {
	topic, err := ValidateTopic(topic)
	if err != nil {
		return nil, err
	}

	var result types.AnalysisResult
	if err := c.post(ctx, "/analyze", map[string]any{"topic": topic}, &result); err != nil {
		return nil, fmt.Errorf("analyzing topic: %w", err)
	}
	return &result, nil
}

// ProposalRequest carries the analysis insights the proposal is built from.
type ProposalRequest struct {
	Topic                  string   `json:"topic"`
	ResearchGaps           []string `json:"research_gaps"`
	ResearchQuestions      []string `json:"research_questions"`
	MethodologySuggestions []string `json:"methodology_suggestions"`
}

// proposalEnvelope is the /generate-proposal response shape.
type proposalEnvelope struct {
	Status   string             `json:"status"`
	Error    string             `json:"error"`
	Proposal types.ProposalData `json:"proposal"`
}

// GenerateProposal asks the backend to draft a proposal from a prior
// analysis of the same topic.
func (c *Client) GenerateProposal(ctx context.Context, req ProposalRequest) (*types.ProposalData, error) {
	topic, err := ValidateTopic(req.Topic)
	if err != nil {
		return nil, err
	}
	req.Topic = topic

	var envelope proposalEnvelope
	if err := c.post(ctx, "/generate-proposal", req, &envelope); err != nil {
		return nil, fmt.Errorf("generating proposal: %w", err)
	}
	if envelope.Status != "success" {
		return nil, fmt.Errorf("generating proposal: %s", envelope.Error)
	}
	return &envelope.Proposal, nil
}

// Health reports backend liveness and its cache size.
type Health struct {
	Status    string `json:"status"`
	CacheSize int    `json:"cache_size"`
}

// CheckHealth queries the backend health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check returned HTTP %d", resp.StatusCode)
	}

	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("parsing health response: %w", err)
	}
	return &h, nil
}

// post sends a JSON body and decodes a JSON response into out. Non-2xx
// responses become *APIError with the backend's error envelope.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// decodeError turns a failing response into an *APIError.
func decodeError(resp *http.Response) error {
	var envelope struct {
		Error      string `json:"error"`
		Suggestion string `json:"suggestion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		envelope.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    envelope.Error,
		Suggestion: envelope.Suggestion,
	}
}
