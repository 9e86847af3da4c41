package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// SpotDistanceKm returns the distance between two spots in kilometers.
// ok is false when either spot has no coordinates.
func SpotDistanceKm(a, b models.Spot) (km float64, ok bool) {
	if !a.HasLocation || !b.HasLocation {
		return 0, false
	}
	return HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude) / 1000, true
}
