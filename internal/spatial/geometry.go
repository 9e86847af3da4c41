package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// DefaultCenter is used when no spot has coordinates (Tokyo Station).
var DefaultCenter = s2.LatLngFromDegrees(35.6812, 139.7671)

// MapView builds the map payload for a set of spots: only spots with coordinates are
// drawn, and the viewport is their bounding rectangle.
func MapView(spots []models.Spot) models.MapView {
	view := models.MapView{Spots: make([]models.Spot, 0, len(spots))}

	rect := s2.EmptyRect()
	for _, s := range spots {
		if !s.HasLocation {
			continue
		}
		view.Spots = append(view.Spots, s)
		rect = rect.AddPoint(s2.LatLngFromDegrees(s.Latitude, s.Longitude))
	}

	if rect.IsEmpty() {
		view.CenterLat = DefaultCenter.Lat.Degrees()
		view.CenterLon = DefaultCenter.Lng.Degrees()
		view.MinLat, view.MaxLat = view.CenterLat, view.CenterLat
		view.MinLon, view.MaxLon = view.CenterLon, view.CenterLon
		return view
	}

	center := rect.Center()
	view.CenterLat = center.Lat.Degrees()
	view.CenterLon = center.Lng.Degrees()
	view.MinLat = rect.Lo().Lat.Degrees()
	view.MinLon = rect.Lo().Lng.Degrees()
	view.MaxLat = rect.Hi().Lat.Degrees()
	view.MaxLon = rect.Hi().Lng.Degrees()
	return view
}
