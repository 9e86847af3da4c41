package service

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// FilterSpots returns the spots whose name contains query, ignoring case.
// Only the empty query returns every spot; whitespace is matched like any
// other text. Order is preserved.
func FilterSpots(spots []models.Spot, query string) []models.Spot {
	if query == "" {
		return spots
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []models.Spot
	for _, s := range spots {
		if s.Name == "" {
			continue
		}
		if strings.Contains(fold.String(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// SpotNames returns the distinct spot names in file order.
func SpotNames(spots []models.Spot) []string {
	seen := make(map[string]bool, len(spots))
	names := make([]string, 0, len(spots))
	for _, s := range spots {
		if s.Name == "" || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}
	return names
}
