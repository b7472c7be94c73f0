package datastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/analysis"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/confidence"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/matcher"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(id string, ts time.Time) *analysis.Result {
	return &analysis.Result{
		ID:        id,
		Timestamp: ts,
		Profile:   analysis.ProfileDefault,
		Detector:  "alphahound",
		Peaks: []peaks.Peak{
			{Channel: 220, EnergyKeV: 661.7, Counts: 2000},
		},
		Isotopes: []analysis.IsotopeResult{
			{
				IsotopeMatch: matcher.IsotopeMatch{
					Isotope:    "Cs-137",
					Confidence: 50,
					Matched: []matcher.MatchedLine{
						{LineEnergyKeV: 661.7, IntensityPercent: 85.1},
					},
					TotalLines: 2,
				},
				EnhancedConfidence: 82.5,
				Factors:            confidence.Factors{HalfLifePenalty: 1},
			},
		},
		Chains: []matcher.DetectedChain{
			{
				Chain:       "U-238",
				Confidence:  61,
				Level:       matcher.LevelMedium,
				NumDetected: 2,
			},
		},
		ElapsedMs: 12.5,
	}
}

func TestSaveAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(sampleResult("run-1", now), "sample.json"))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, "sample.json", run.InputFile)
	assert.Equal(t, 1, run.NumPeaks)
	assert.InDelta(t, 12.5, run.ElapsedMs, 0.001)

	require.Len(t, run.Isotopes, 1)
	assert.Equal(t, "Cs-137", run.Isotopes[0].Isotope)
	assert.InDelta(t, 82.5, run.Isotopes[0].EnhancedConfidence, 0.001)
	assert.Equal(t, 1, run.Isotopes[0].MatchedLines)
	assert.Equal(t, 2, run.Isotopes[0].TotalLines)

	require.Len(t, run.Chains, 1)
	assert.Equal(t, "U-238", run.Chains[0].Chain)
	assert.Equal(t, string(matcher.LevelMedium), run.Chains[0].Level)
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		r := sampleResult(id, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Save(r, "sample.json"))
	}

	runs, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].RunID, "newest first")
	assert.Equal(t, "b", runs[1].RunID)
}

func TestRunsSince(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(sampleResult("old", base.Add(-48*time.Hour)), "a.json"))
	require.NoError(t, store.Save(sampleResult("new", base), "b.json"))

	runs, err := store.RunsSince(base.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].RunID)
}

func TestSaveDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, store.Save(sampleResult("dup", now), "a.json"))
	assert.Error(t, store.Save(sampleResult("dup", now), "b.json"),
		"run IDs are unique")
}
