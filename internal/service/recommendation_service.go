package service

import (
	"errors"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// DefaultSlot is the time slot used when none is configured.
const DefaultSlot = "12:00"

// ErrNoRecommendation means there is nothing to recommend at the requested slot.
var ErrNoRecommendation = errors.New("no congestion data at this time slot")

// LeastCrowded returns the sample with the lowest score at slot. Ties go to the
// earliest row in file order. Rows with a blank score are never picked.
func LeastCrowded(samples []models.CongestionSample, slot string, hasScore bool) (models.CongestionSample, error) {
	if !hasScore {
		return models.CongestionSample{}, ErrNoRecommendation
	}

	rows := Scored(BySlot(samples, slot))
	if len(rows) == 0 {
		return models.CongestionSample{}, ErrNoRecommendation
	}

	best := rows[0]
	for _, c := range rows[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best, nil
}
