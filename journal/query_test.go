package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnalyses(t *testing.T, j *SQLite) []AnalysisRecord {
	t.Helper()

	recs := []AnalysisRecord{
		{
			ID: "01HNY3B8K9Q7T0000000000001", Created: time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC),
			Symbol: "EA", Benchmark: "^GSPC", Start: day(2024, 1, 1), End: day(2024, 4, 1),
			Operation: "closing-stats", Result: []byte(`{"mean":130.2}`),
		},
		{
			ID: "01HNY3B8K9Q7T0000000000002", Created: time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC),
			Symbol: "EBAY", Benchmark: "^GSPC", Start: day(2024, 1, 1), End: day(2024, 4, 1),
			Operation: "sharpe", Error: "cannot compute Sharpe ratio: zero volatility",
		},
		{
			ID: "01HNY3B8K9Q7T0000000000003", Created: time.Date(2024, 4, 11, 8, 0, 0, 0, time.UTC),
			Symbol: "EA", Benchmark: "^GSPC", Start: day(2024, 1, 1), End: day(2024, 4, 1),
			Operation: "beta", Result: []byte(`{"alpha":0.0001,"beta":0.8}`),
		},
	}
	for _, r := range recs {
		require.NoError(t, j.RecordAnalysis(context.Background(), r))
	}
	return recs
}

func TestGetAnalysis(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	recs := seedAnalyses(t, j)

	got, err := j.GetAnalysis(context.Background(), recs[0].ID)
	require.NoError(t, err)

	assert.Equal(t, recs[0].ID, got.ID)
	assert.True(t, got.Created.Equal(recs[0].Created))
	assert.Equal(t, "EA", got.Symbol)
	assert.Equal(t, "^GSPC", got.Benchmark)
	assert.Equal(t, recs[0].Start, got.Start)
	assert.Equal(t, recs[0].End, got.End)
	assert.JSONEq(t, `{"mean":130.2}`, string(got.Result))
	assert.False(t, got.Failed())

	failed, err := j.GetAnalysis(context.Background(), recs[1].ID)
	require.NoError(t, err)
	assert.True(t, failed.Failed())
	assert.Nil(t, failed.Result)
}

func TestGetAnalysisNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetAnalysis(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListAnalyses(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	recs := seedAnalyses(t, j)

	all, err := j.ListAnalyses(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, recs[0].ID, all[0].ID)
	assert.Equal(t, recs[2].ID, all[2].ID)

	ea, err := j.ListAnalyses(context.Background(), "ea")
	require.NoError(t, err)
	require.Len(t, ea, 2)
	assert.Equal(t, "closing-stats", ea[0].Operation)
	assert.Equal(t, "beta", ea[1].Operation)

	none, err := j.ListAnalyses(context.Background(), "EW")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAnalysesBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	seedAnalyses(t, j)

	got, err := j.ListAnalysesBetween(context.Background(), day(2024, 4, 10), day(2024, 4, 11))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "EA", got[0].Symbol)
	assert.Equal(t, "EBAY", got[1].Symbol)
}
