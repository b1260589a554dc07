// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that talk to the
// backend over the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "researchlens/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// APIConfig holds settings for the ResearchLens backend client.
type APIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the backend root (default "http://localhost:5000").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the retry budget for rate-limited or temporarily
	// unavailable responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DetailLevel selects the granularity of the synthesized proposal document.
// The preview and the printable export always share one level; it is an
// explicit choice, not a per-renderer difference.
type DetailLevel string

const (
	// DetailStandard segments methodology into 3 parts and renders
	// expected outcomes as a single paragraph.
	DetailStandard DetailLevel = "standard"

	// DetailExpanded segments methodology into 5 parts and subdivides
	// expected outcomes into 3 subsections.
	DetailExpanded DetailLevel = "expanded"
)

// SynthesisConfig holds settings for the proposal document synthesizer.
type SynthesisConfig struct {
	// Detail selects the document granularity (default "expanded").
	Detail DetailLevel `json:"detail" yaml:"detail"`
}

// ExportConfig holds settings for the printable export surface.
type ExportConfig struct {
	// OutputDir is the directory for export documents (default
	// "output/exports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PrintDelay is the fixed delay between the surface finishing layout
	// and the print trigger firing (default 500ms).
	PrintDelay time.Duration `json:"print_delay" yaml:"print_delay"`

	// Open controls whether the host opener is invoked on the written
	// document (default true).
	Open bool `json:"open" yaml:"open"`
}

// HistoryConfig holds settings for the local run history store.
type HistoryConfig struct {
	// Path is the SQLite database file (default "history/researchlens.db").
	Path string `json:"path" yaml:"path"`

	// TTL is how long a stored analysis stays valid (default 24h, the
	// backend's own cache window).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// MaxEntries caps history listings (default 20).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// AuthConfig holds settings for the static credential gate.
type AuthConfig struct {
	// CredentialsDir is a directory of plain-text credential files
	// (default ".credentials/").
	CredentialsDir string `json:"credentials_dir" yaml:"credentials_dir"`

	// SessionPath is the session file location (default ".researchlens-session").
	SessionPath string `json:"session_path" yaml:"session_path"`
}

// ClientConfig groups all component configurations for the client.
type ClientConfig struct {
	API       APIConfig       `json:"api" yaml:"api"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
}
