package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendPoint(score, spend float64) TrendPoint {
	return TrendPoint{Timestamp: time.Now(), AverageScore: score, MonthlySpend: spend}
}

func TestTrendHistory_PushAndLen(t *testing.T) {
	h := NewTrendHistory(5)
	require.Equal(t, 0, h.Len())

	h.Push(trendPoint(40, 1000))
	h.Push(trendPoint(42, 1100))
	assert.Equal(t, 2, h.Len())
}

func TestTrendHistory_SeriesOrder(t *testing.T) {
	h := NewTrendHistory(5)
	h.Push(trendPoint(10, 100))
	h.Push(trendPoint(20, 200))
	h.Push(trendPoint(30, 300))

	assert.Equal(t, []float64{10, 20, 30}, h.Scores())
	assert.Equal(t, []float64{100, 200, 300}, h.Spend())
}

func TestTrendHistory_WrapsAtCapacity(t *testing.T) {
	h := NewTrendHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(trendPoint(float64(i), 0))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{3, 4, 5}, h.Scores(), "oldest entries are overwritten")
}

func TestTrendHistory_Clear(t *testing.T) {
	h := NewTrendHistory(3)
	h.Push(trendPoint(1, 1))
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Scores())
}

func TestTrendHistory_DefaultCapacity(t *testing.T) {
	h := NewTrendHistory(0)
	for i := 0; i < 100; i++ {
		h.Push(trendPoint(float64(i), 0))
	}
	assert.Equal(t, 60, h.Len())
}
