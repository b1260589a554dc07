// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists past analysis runs and their proposals in a
// local SQLite database. It doubles as the client-side cache: entries
// expire after the backend's own cache window and expired rows are
// invisible to reads. The synthesizer never touches this store; only
// ProposalData and analysis results cross the boundary.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/researchlens/pkg/types"
)

// DefaultTTL matches the backend's 24-hour cache expiration.
const DefaultTTL = 24 * time.Hour

const defaultMaxEntries = 20

// ErrNotFound reports that no live entry exists for a topic.
var ErrNotFound = errors.New("history: topic not found")

// Entry is one stored analysis run.
type Entry struct {
	// Topic is the normalized topic key.
	Topic string `json:"topic" yaml:"topic"`

	// Analysis is the backend's analysis result.
	Analysis *types.AnalysisResult `json:"analysis" yaml:"analysis"`

	// Proposal is the generated proposal, when one was requested.
	Proposal *types.ProposalData `json:"proposal,omitempty" yaml:"proposal,omitempty"`

	// CreatedAt is when the analysis was stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	ttl        time.Duration
	maxEntries int
}

// Open opens or creates the history database at cfg.Path, creating parent
// directories and the schema as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history: database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &Store{db: db, ttl: ttl, maxEntries: maxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		topic TEXT PRIMARY KEY,
		analysis TEXT NOT NULL,
		proposal TEXT,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Key normalizes a topic the way the backend keys its cache: lowercased
// and trimmed.
func Key(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// SaveAnalysis stores an analysis run, replacing any previous run for the
// same topic (and discarding its proposal, which belonged to the old
// analysis).
func (s *Store) SaveAnalysis(ctx context.Context, topic string, analysis *types.AnalysisResult) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (topic, analysis, proposal, created_at) VALUES (?, ?, NULL, ?)
		 ON CONFLICT(topic) DO UPDATE SET analysis = excluded.analysis,
			proposal = NULL, created_at = excluded.created_at`,
		Key(topic), string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("storing analysis: %w", err)
	}
	return nil
}

// AttachProposal stores the proposal generated for a previously saved
// analysis. It fails with ErrNotFound when no live analysis exists.
func (s *Store) AttachProposal(ctx context.Context, topic string, proposal *types.ProposalData) error {
	if _, err := s.Get(ctx, topic); err != nil {
		return err
	}

	payload, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("encoding proposal: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE runs SET proposal = ? WHERE topic = ?`,
		string(payload), Key(topic))
	if err != nil {
		return fmt.Errorf("storing proposal: %w", err)
	}
	return nil
}

// Get returns the live entry for a topic. Expired entries are deleted on
// sight and reported as ErrNotFound.
func (s *Store) Get(ctx context.Context, topic string) (*Entry, error) {
	key := Key(topic)

	var (
		analysisJSON string
		proposalJSON sql.NullString
		createdAt    string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT analysis, proposal, created_at FROM runs WHERE topic = ?`, key,
	).Scan(&analysisJSON, &proposalJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	entry, err := decodeEntry(key, analysisJSON, proposalJSON, createdAt)
	if err != nil {
		return nil, err
	}

	if time.Since(entry.CreatedAt) > s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE topic = ?`, key); err != nil {
			return nil, fmt.Errorf("pruning expired entry: %w", err)
		}
		return nil, ErrNotFound
	}
	return entry, nil
}

// List returns live entries, newest first, up to the configured maximum.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	if err := s.Prune(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, analysis, proposal, created_at FROM runs
		 ORDER BY created_at DESC LIMIT ?`, s.maxEntries)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			topic        string
			analysisJSON string
			proposalJSON sql.NullString
			createdAt    string
		)
		if err := rows.Scan(&topic, &analysisJSON, &proposalJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entry, err := decodeEntry(topic, analysisJSON, proposalJSON, createdAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes the entry for a topic, expired or not.
func (s *Store) Delete(ctx context.Context, topic string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE topic = ?`, Key(topic)); err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}

// Prune removes every expired entry.
func (s *Store) Prune(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.ttl).Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// ExportYAML writes the live entries to w as a YAML document, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	doc := struct {
		Entries []*Entry `yaml:"entries"`
	}{Entries: entries}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding history export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing history export: %w", err)
	}
	return nil
}

func decodeEntry(topic, analysisJSON string, proposalJSON sql.NullString, createdAt string) (*Entry, error) {
	entry := &Entry{Topic: topic}

	if err := json.Unmarshal([]byte(analysisJSON), &entry.Analysis); err != nil {
		return nil, fmt.Errorf("decoding analysis for %q: %w", topic, err)
	}
	if proposalJSON.Valid {
		if err := json.Unmarshal([]byte(proposalJSON.String), &entry.Proposal); err != nil {
			return nil, fmt.Errorf("decoding proposal for %q: %w", topic, err)
		}
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp for %q: %w", topic, err)
	}
	entry.CreatedAt = t
	return entry, nil
}
