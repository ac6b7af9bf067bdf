// Package stats derives display statistics from a user's score history
package stats

import (
	"math"
	"slices"

	"github.com/amiramtracker/backend/internal/models"
)

// RecentWindow is the number of latest scores averaged for level classification
const RecentWindow = 3

// Summary holds the metrics of a non-empty score history
type Summary struct {
	Count         int
	Max           int
	Average       float64
	First         int
	Last          int
	Improvement   int
	RecentAverage float64
	Level         LevelBand
	// Sorted holds the records in ascending date order, ready for charting
	Sorted []models.Score
}

// Compute calculates the summary of records.
// It reports false for an empty history, in which case no metric is meaningful.
// The input slice is not modified.
func Compute(records []models.Score) (Summary, bool) {
	if len(records) == 0 {
		return Summary{}, false
	}

	sorted := SortByDate(records)

	sum, maxScore := 0, sorted[0].Score
	for _, r := range sorted {
		sum += r.Score
		maxScore = max(maxScore, r.Score)
	}

	recent := sorted[max(0, len(sorted)-RecentWindow):]
	recentSum := 0
	for _, r := range recent {
		recentSum += r.Score
	}
	recentAverage := round1(float64(recentSum) / float64(len(recent)))

	first, last := sorted[0].Score, sorted[len(sorted)-1].Score

	return Summary{
		Count:         len(sorted),
		Max:           maxScore,
		Average:       round1(float64(sum) / float64(len(sorted))),
		First:         first,
		Last:          last,
		Improvement:   last - first,
		RecentAverage: recentAverage,
		Level:         LookupLevel(recentAverage),
		Sorted:        sorted,
	}, true
}

// SortByDate returns a copy of records stably sorted by ascending date
func SortByDate(records []models.Score) []models.Score {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.Score) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
