//go:build integration

package engine_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackshift/internal/engine"
	"stackshift/internal/source"
)

// liveSource opens the source named by $STACKSHIFT_SOURCE or skips the test
// if unset.
func liveSource(t *testing.T) source.Source {
	t.Helper()
	loc := os.Getenv("STACKSHIFT_SOURCE")
	if loc == "" {
		t.Skip("STACKSHIFT_SOURCE not set; skipping integration test")
	}
	src, err := source.Open(source.Config{
		Location:       loc,
		RequestTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	return src
}

// TestLiveSource_FullEvaluation fetches the real portfolio, runs the full
// pipeline, and verifies that every assessment satisfies the scoring
// invariants.
func TestLiveSource_FullEvaluation(t *testing.T) {
	src := liveSource(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotEmpty(t, p.Services, "portfolio should have at least one service")
	assert.False(t, p.FetchedAt.IsZero(), "fetch timestamp should be set")

	assessments, err := engine.EvaluateAll(ctx, p)
	require.NoError(t, err)
	require.Len(t, assessments, len(p.Services))

	for _, a := range assessments {
		assert.GreaterOrEqual(t, a.Total, 0, "%s: score below range", a.Service.DisplayName())
		assert.LessOrEqual(t, a.Total, 100, "%s: score above range", a.Service.DisplayName())
		assert.Equal(t, a.Total, a.Breakdown.Total(), "%s: breakdown must sum to the total", a.Service.DisplayName())
		if a.ROI != nil && a.ROI.PaybackDefined {
			assert.True(t, a.ROI.PaybackMonths.IsPositive(), "%s: defined payback must be positive", a.Service.DisplayName())
		}
	}

	summary := engine.Summarize(assessments)
	assert.Equal(t, len(assessments), summary.ServiceCount)
	tierTotal := 0
	for _, n := range summary.TierCounts {
		tierTotal += n
	}
	assert.Equal(t, len(assessments), tierTotal, "tier counts must cover every service")
}

// TestLiveSource_RepeatedFetch runs two consecutive fetches (2 s apart) and
// verifies both evaluate cleanly, as the dashboard's watch loop would.
func TestLiveSource_RepeatedFetch(t *testing.T) {
	src := liveSource(t)
	ctx := context.Background()

	p1, err := src.Fetch(ctx)
	require.NoError(t, err)
	_, err = engine.EvaluateAll(ctx, p1)
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	p2, err := src.Fetch(ctx)
	require.NoError(t, err)
	_, err = engine.EvaluateAll(ctx, p2)
	require.NoError(t, err)

	assert.True(t, p2.FetchedAt.After(p1.FetchedAt), "second fetch should carry a later timestamp")
}
