package spatial

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// FeatureCollection converts spots with coordinates into GeoJSON points. Properties
// use the generic "latitude"/"longitude" names the map widget expects.
func FeatureCollection(spots []models.Spot) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(spots))}
	for _, s := range spots {
		if !s.HasLocation {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       s.Name,
			Geometry: geom.NewPointFlat(geom.XY, []float64{s.Longitude, s.Latitude}),
			Properties: map[string]interface{}{
				"name":        s.Name,
				"city":        s.City,
				"alternative": s.Alternative,
				"latitude":    s.Latitude,
				"longitude":   s.Longitude,
			},
		})
	}
	return fc
}
