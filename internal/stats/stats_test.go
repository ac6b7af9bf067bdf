package stats

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_Empty(t *testing.T) {
	summary, ok := Compute(nil)

	assert.False(t, ok)
	assert.Equal(t, Summary{}, summary)

	summary, ok = Compute([]models.Score{})
	assert.False(t, ok)
	assert.Equal(t, Summary{}, summary)
}

func TestCompute_ThreeScores(t *testing.T) {
	records := []models.Score{
		{ID: 1, Date: day("2024-01-01"), Score: 100},
		{ID: 2, Date: day("2024-02-01"), Score: 120},
		{ID: 3, Date: day("2024-03-01"), Score: 130},
	}

	summary, ok := Compute(records)

	require.True(t, ok)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 116.7, summary.Average)
	assert.Equal(t, 130, summary.Max)
	assert.Equal(t, 130, summary.Last)
	assert.Equal(t, 100, summary.First)
	assert.Equal(t, 30, summary.Improvement)
	assert.Equal(t, 116.7, summary.RecentAverage)
	assert.Equal(t, "מתקדמים א'", summary.Level.Name)
	assert.Equal(t, 2, summary.Level.RequiredCourses)
}

func TestCompute_UnorderedInput(t *testing.T) {
	records := []models.Score{
		{ID: 4, Date: day("2024-04-01"), Score: 60},
		{ID: 1, Date: day("2024-01-01"), Score: 140},
		{ID: 3, Date: day("2024-03-01"), Score: 80},
		{ID: 2, Date: day("2024-02-01"), Score: 90},
	}
	original := append([]models.Score(nil), records...)

	summary, ok := Compute(records)

	require.True(t, ok)
	assert.Equal(t, original, records, "input must not be reordered")
	assert.Equal(t, []int{1, 2, 3, 4}, ids(summary.Sorted))
	assert.Equal(t, 60, summary.Last)
	assert.Equal(t, 140, summary.First)
	assert.Equal(t, -80, summary.Improvement)
	assert.Equal(t, 140, summary.Max)
	assert.Equal(t, 92.5, summary.Average)
	// last three: 90, 80, 60
	assert.Equal(t, 76.7, summary.RecentAverage)
	assert.Equal(t, "טרום בסיסי", summary.Level.Name)
}

func TestCompute_FewerThanWindow(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected float64
	}{
		{name: "single", scores: []int{101}, expected: 101},
		{name: "two", scores: []int{100, 105}, expected: 102.5},
		{name: "two rounding", scores: []int{100, 101}, expected: 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]models.Score, len(tt.scores))
			start := day("2024-01-01")
			for i, s := range tt.scores {
				records[i] = models.Score{ID: i + 1, Date: start.AddDate(0, 0, i), Score: s}
			}

			summary, ok := Compute(records)

			require.True(t, ok)
			assert.Equal(t, tt.expected, summary.RecentAverage)
			assert.Equal(t, summary.Average, summary.RecentAverage)
		})
	}
}

func TestCompute_StableForEqualDates(t *testing.T) {
	records := []models.Score{
		{ID: 1, Date: day("2024-01-01"), Score: 70},
		{ID: 2, Date: day("2024-01-01"), Score: 90},
		{ID: 3, Date: day("2023-12-01"), Score: 80},
	}

	summary, ok := Compute(records)

	require.True(t, ok)
	assert.Equal(t, []int{3, 1, 2}, ids(summary.Sorted))
	assert.Equal(t, 90, summary.Last)
}

func TestCompute_RandomProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	start := day("2020-01-01")

	for trial := 0; trial < 200; trial++ {
		n := rnd.Intn(20) + 1
		records := make([]models.Score, n)
		sum := 0
		for i := range records {
			s := models.MinScore + rnd.Intn(models.MaxScore-models.MinScore+1)
			sum += s
			records[i] = models.Score{ID: i + 1, Date: start.AddDate(0, 0, rnd.Intn(1000)), Score: s}
		}

		summary, ok := Compute(records)

		require.True(t, ok)
		assert.Equal(t, math.Round(float64(sum)/float64(n)*10)/10, summary.Average)
		for _, r := range records {
			assert.GreaterOrEqual(t, summary.Max, r.Score)
		}
		for i := 1; i < len(summary.Sorted); i++ {
			assert.False(t, summary.Sorted[i].Date.Before(summary.Sorted[i-1].Date))
		}
		assert.Equal(t, summary.Sorted[n-1].Score, summary.Last)
	}
}

func ids(records []models.Score) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
