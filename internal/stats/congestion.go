package stats

import (
	"sort"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// Summarize describes one spot's samples over the day, ignoring blank scores. It
// returns nil when nothing is left. Ties for busiest and quietest go to the earliest row.
func Summarize(all []models.CongestionSample) *models.CongestionSummary {
	samples := make([]models.CongestionSample, 0, len(all))
	for _, s := range all {
		if !s.Missing {
			samples = append(samples, s)
		}
	}
	if len(samples) == 0 {
		return nil
	}

	scores := make([]float64, len(samples))
	busiest, quietest := 0, 0
	for i, s := range samples {
		scores[i] = s.Score
		if s.Score > samples[busiest].Score {
			busiest = i
		}
		if s.Score < samples[quietest].Score {
			quietest = i
		}
	}

	return &models.CongestionSummary{
		Samples:      len(samples),
		Mean:         Mean(scores),
		Median:       Median(scores),
		Max:          samples[busiest].Score,
		Min:          samples[quietest].Score,
		BusiestSlot:  samples[busiest].TimeSlot,
		QuietestSlot: samples[quietest].TimeSlot,
	}
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median calculates the median value
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Create a copy to avoid modifying the original slice
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
