package service

import "github.com/jengzang/quiet-spots-go/internal/models"

// BySpot returns the samples for one spot in file order.
func BySpot(samples []models.CongestionSample, spot string) []models.CongestionSample {
	var out []models.CongestionSample
	for _, c := range samples {
		if c.SpotName == spot {
			out = append(out, c)
		}
	}
	return out
}

// BySlot returns the samples at one time-slot label across all spots, in file order.
func BySlot(samples []models.CongestionSample, slot string) []models.CongestionSample {
	var out []models.CongestionSample
	for _, c := range samples {
		if c.TimeSlot == slot {
			out = append(out, c)
		}
	}
	return out
}

// Scored drops samples whose score cell was blank.
func Scored(samples []models.CongestionSample) []models.CongestionSample {
	var out []models.CongestionSample
	for _, c := range samples {
		if !c.Missing {
			out = append(out, c)
		}
	}
	return out
}

// seriesOf builds a chart from samples, one point per scored row.
func seriesOf(samples []models.CongestionSample, base models.ChartSeries) *models.ChartSeries {
	samples = Scored(samples)
	if len(samples) == 0 {
		return nil
	}
	chart := base
	chart.Labels = make([]string, len(samples))
	chart.Values = make([]float64, len(samples))
	for i, c := range samples {
		chart.Labels[i] = c.TimeSlot
		chart.Values[i] = c.Score
	}
	return &chart
}
