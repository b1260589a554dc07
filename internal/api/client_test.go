// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/researchlens/internal/httputil"
	"github.com/pdiddy/researchlens/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testClient(url string) *Client {
	return NewClient(types.APIConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "researchlens-test/0.1"},
		BaseURL:    url,
		MaxRetries: 2,
	})
}

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    string
		wantErr bool
	}{
		{"valid", "clinical AI", "clinical AI", false},
		{"trimmed", "  clinical AI  ", "clinical AI", false},
		{"too short", "ai", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("x", 201), "", true},
		{"exactly 200", strings.Repeat("x", 200), strings.Repeat("x", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTopic(tt.topic)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("topic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["topic"] != "clinical AI" {
			t.Errorf("topic = %q", body["topic"])
		}

		json.NewEncoder(w).Encode(types.AnalysisResult{
			Status: "success",
			Topic:  "clinical AI",
			TrendAnalysis: types.TrendAnalysis{
				TrendDirection:   types.TrendHeatingUp,
				GrowthPercentage: 42.5,
			},
			ResearchQuestions: []string{"What are the key barriers?"},
			References: []types.Reference{
				{Number: 1, Reference: "Doe, J. (2024). A paper."},
			},
		})
	}))
	defer ts.Close()

	result, err := testClient(ts.URL).Analyze(context.Background(), "  clinical AI ")
	if err != nil {
		t.Fatal(err)
	}
	if result.TrendAnalysis.TrendDirection != types.TrendHeatingUp {
		t.Errorf("direction = %q", result.TrendAnalysis.TrendDirection)
	}
	if len(result.References) != 1 || result.References[0].Number != 1 {
		t.Errorf("references = %+v", result.References)
	}
}

func TestAnalyzeBackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      "No papers found for topic: obscurium",
			"status":     "error",
			"suggestion": "Try a broader or different search term",
		})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Analyze(context.Background(), "obscurium")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Suggestion == "" {
		t.Error("suggestion not decoded")
	}
}

func TestAnalyzeRetriesServiceUnavailable(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(types.AnalysisResult{Status: "success"})
	}))
	defer ts.Close()

	if _, err := testClient(ts.URL).Analyze(context.Background(), "clinical AI"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("backend called %d times, want 2", n)
	}
}

func TestAnalyzeRejectsBadTopicLocally(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	if _, err := testClient(ts.URL).Analyze(context.Background(), "x"); err == nil {
		t.Fatal("expected validation error")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("invalid topic reached the backend")
	}
}

func TestGenerateProposal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-proposal" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req ProposalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.ResearchGaps) != 1 {
			t.Errorf("gaps = %v", req.ResearchGaps)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"proposal": types.ProposalData{
				Title:        "A Title",
				Introduction: "First. Second. Third.",
			},
		})
	}))
	defer ts.Close()

	proposal, err := testClient(ts.URL).GenerateProposal(context.Background(), ProposalRequest{
		Topic:             "clinical AI",
		ResearchGaps:      []string{"gap"},
		ResearchQuestions: []string{"What are the key barriers?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if proposal.Title != "A Title" {
		t.Errorf("title = %q", proposal.Title)
	}
}

func TestGenerateProposalErrorStatus(t *testing.T) {
	// The backend may answer 200 with a non-success envelope.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "error",
			"error":    "generation failed",
			"proposal": types.ProposalData{Title: "Research Proposal"},
		})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).GenerateProposal(context.Background(), ProposalRequest{Topic: "clinical AI"})
	if err == nil || !strings.Contains(err.Error(), "generation failed") {
		t.Errorf("err = %v, want generation failure", err)
	}
}

func TestCheckHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Health{Status: "healthy", CacheSize: 4})
	}))
	defer ts.Close()

	h, err := testClient(ts.URL).CheckHealth(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.CacheSize != 4 {
		t.Errorf("health = %+v", h)
	}
}
