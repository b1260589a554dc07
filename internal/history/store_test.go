// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/researchlens/pkg/types"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
		TTL:  ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testAnalysis(topic string) *types.AnalysisResult {
	return &types.AnalysisResult{
		Status: "success",
		Topic:  topic,
		TrendAnalysis: types.TrendAnalysis{
			TrendDirection:   types.TrendStable,
			GrowthPercentage: 1.5,
		},
		ResearchQuestions: []string{"What are the key barriers?"},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "clinical ai", Key("  Clinical AI "))
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "Clinical AI", testAnalysis("Clinical AI")))

	// Lookup is keyed on the normalized topic.
	entry, err := s.Get(ctx, "  clinical ai ")
	require.NoError(t, err)
	assert.Equal(t, "clinical ai", entry.Topic)
	assert.Equal(t, types.TrendStable, entry.Analysis.TrendAnalysis.TrendDirection)
	assert.Nil(t, entry.Proposal)
	assert.WithinDuration(t, time.Now(), entry.CreatedAt, time.Minute)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t, time.Hour)

	_, err := s.Get(context.Background(), "never analyzed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReplacesAndDropsProposal(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "topic one", testAnalysis("topic one")))
	require.NoError(t, s.AttachProposal(ctx, "topic one", &types.ProposalData{Title: "T"}))

	// Re-analyzing invalidates the proposal built from the old analysis.
	require.NoError(t, s.SaveAnalysis(ctx, "topic one", testAnalysis("topic one")))

	entry, err := s.Get(ctx, "topic one")
	require.NoError(t, err)
	assert.Nil(t, entry.Proposal)
}

func TestAttachProposal(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "topic", testAnalysis("topic")))
	require.NoError(t, s.AttachProposal(ctx, "topic", &types.ProposalData{
		Title:             "A Title",
		ResearchQuestions: []string{"What are the key barriers?"},
	}))

	entry, err := s.Get(ctx, "topic")
	require.NoError(t, err)
	require.NotNil(t, entry.Proposal)
	assert.Equal(t, "A Title", entry.Proposal.Title)
}

func TestAttachProposalWithoutAnalysis(t *testing.T) {
	s := openTestStore(t, time.Hour)

	err := s.AttachProposal(context.Background(), "missing", &types.ProposalData{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiration(t *testing.T) {
	s := openTestStore(t, 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "short lived", testAnalysis("short lived")))
	time.Sleep(25 * time.Millisecond)

	_, err := s.Get(ctx, "short lived")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "older", testAnalysis("older")))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.SaveAnalysis(ctx, "newer", testAnalysis("newer")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].Topic)
	assert.Equal(t, "older", entries[1].Topic)
}

func TestDeleteAndClear(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "a", testAnalysis("a")))
	require.NoError(t, s.SaveAnalysis(ctx, "b", testAnalysis("b")))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Clear(ctx))
	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportYAML(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "clinical AI", testAnalysis("clinical AI")))

	var b strings.Builder
	require.NoError(t, s.ExportYAML(ctx, &b))

	out := b.String()
	assert.Contains(t, out, "entries:")
	assert.Contains(t, out, "clinical ai")
	assert.Contains(t, out, "What are the key barriers?")
}
