package spatial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

var (
	kinkakuji  = models.Spot{Name: "金閣寺", City: "Kyoto", Latitude: 35.0394, Longitude: 135.7292, HasLocation: true}
	ginkakuji  = models.Spot{Name: "銀閣寺", City: "Kyoto", Latitude: 35.0270, Longitude: 135.7982, HasLocation: true}
	noLocation = models.Spot{Name: "未登録", City: "Kyoto"}
)

func TestHaversineDistance(t *testing.T) {
	// Tokyo Station to Osaka Station, roughly 403 km
	d := HaversineDistance(35.6812, 139.7671, 34.7025, 135.4959)
	assert.InDelta(t, 403000, d, 5000)

	assert.Zero(t, HaversineDistance(35, 135, 35, 135))
}

func TestSpotDistanceKm(t *testing.T) {
	km, ok := SpotDistanceKm(kinkakuji, ginkakuji)
	require.True(t, ok)
	assert.InDelta(t, 6.4, km, 0.5)

	_, ok = SpotDistanceKm(kinkakuji, noLocation)
	assert.False(t, ok)
}

func TestMapView(t *testing.T) {
	view := MapView([]models.Spot{kinkakuji, noLocation, ginkakuji})

	require.Len(t, view.Spots, 2)
	assert.InDelta(t, 35.0270, view.MinLat, 1e-6)
	assert.InDelta(t, 35.0394, view.MaxLat, 1e-6)
	assert.InDelta(t, 135.7292, view.MinLon, 1e-6)
	assert.InDelta(t, 135.7982, view.MaxLon, 1e-6)
	assert.InDelta(t, 35.0332, view.CenterLat, 1e-3)
}

func TestMapView_NoCoordinates(t *testing.T) {
	view := MapView([]models.Spot{noLocation})

	assert.Empty(t, view.Spots)
	assert.InDelta(t, DefaultCenter.Lat.Degrees(), view.CenterLat, 1e-9)
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection([]models.Spot{kinkakuji, noLocation})
	require.Len(t, fc.Features, 1)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "Point", decoded.Features[0].Geometry.Type)
	assert.Equal(t, []float64{135.7292, 35.0394}, decoded.Features[0].Geometry.Coordinates)
	assert.Equal(t, 35.0394, decoded.Features[0].Properties["latitude"])
}
