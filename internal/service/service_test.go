package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

type staticDatasets struct {
	ds  *models.Dataset
	err error
}

func (s staticDatasets) Get(ctx context.Context) (*models.Dataset, error) {
	return s.ds, s.err
}

type fakeWeather struct {
	cities []string
}

func (f *fakeWeather) Describe(ctx context.Context, city string) string {
	f.cities = append(f.cities, city)
	return "晴れ（21.5℃）"
}

func spotsFixture() []models.Spot {
	return []models.Spot{
		{Name: "Tokyo Tower", City: "Tokyo", Latitude: 35.6586, Longitude: 139.7454, HasLocation: true},
		{Name: "tokyo station", City: "Tokyo", Latitude: 35.6812, Longitude: 139.7671, HasLocation: true},
		{Name: "Kinkakuji", City: "Kyoto", Latitude: 35.0394, Longitude: 135.7292, HasLocation: true},
		{Name: "", City: "Nowhere"},
	}
}

func TestFilterSpots(t *testing.T) {
	spots := spotsFixture()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "case insensitive substring", query: "Tokyo", want: []string{"Tokyo Tower", "tokyo station"}},
		{name: "lower case query", query: "tower", want: []string{"Tokyo Tower"}},
		{name: "no match", query: "zzz", want: nil},
		{name: "surrounding spaces are part of the query", query: "  kinkaku ", want: nil},
		{name: "single space matches names with a space", query: " ", want: []string{"Tokyo Tower", "tokyo station"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range FilterSpots(spots, tt.query) {
				got = append(got, s.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterSpots_EmptyQueryReturnsAll(t *testing.T) {
	spots := spotsFixture()
	assert.Len(t, FilterSpots(spots, ""), len(spots))
	assert.Empty(t, FilterSpots(spots, "   "))
}

func TestDashboard_HomeKeepsWhitespaceQuery(t *testing.T) {
	svc := NewDashboardService(staticDatasets{ds: &models.Dataset{Spots: spotsFixture()}}, &fakeWeather{}, "")

	view, err := svc.Home(context.Background(), " ")
	require.NoError(t, err)
	assert.Equal(t, " ", view.Query)
	assert.Equal(t, []string{"Tokyo Tower", "tokyo station"}, view.Matches)
	assert.False(t, view.NoMatch)
}

func TestSpotNames(t *testing.T) {
	spots := append(spotsFixture(), models.Spot{Name: "Kinkakuji"})
	assert.Equal(t, []string{"Tokyo Tower", "tokyo station", "Kinkakuji"}, SpotNames(spots))
}

func TestBySpotAndBySlot(t *testing.T) {
	samples := []models.CongestionSample{
		{SpotName: "A", TimeSlot: "09:00", Score: 10},
		{SpotName: "B", TimeSlot: "12:00", Score: 20},
		{SpotName: "A", TimeSlot: "12:00", Score: 30},
		{SpotName: "A", TimeSlot: "15:00", Score: 40},
	}

	bySpot := BySpot(samples, "A")
	require.Len(t, bySpot, 3)
	assert.Equal(t, []string{"09:00", "12:00", "15:00"}, []string{bySpot[0].TimeSlot, bySpot[1].TimeSlot, bySpot[2].TimeSlot})

	bySlot := BySlot(samples, "12:00")
	require.Len(t, bySlot, 2)
	assert.Equal(t, "B", bySlot[0].SpotName)
	assert.Equal(t, "A", bySlot[1].SpotName)

	assert.Empty(t, BySpot(samples, "missing"))
	assert.Empty(t, BySlot(samples, "12"))
}

func TestLeastCrowded(t *testing.T) {
	samples := []models.CongestionSample{
		{SpotName: "A", TimeSlot: "12:00", Score: 30},
		{SpotName: "B", TimeSlot: "12:00", Score: 10},
		{SpotName: "C", TimeSlot: "12:00", Score: 10},
		{SpotName: "D", TimeSlot: "15:00", Score: 0},
	}

	pick, err := LeastCrowded(samples, "12:00", true)
	require.NoError(t, err)
	assert.Equal(t, "B", pick.SpotName)

	_, err = LeastCrowded(samples, "18:00", true)
	assert.ErrorIs(t, err, ErrNoRecommendation)

	_, err = LeastCrowded(samples, "12:00", false)
	assert.ErrorIs(t, err, ErrNoRecommendation)
}

func TestLeastCrowded_SkipsBlankScores(t *testing.T) {
	samples := []models.CongestionSample{
		{SpotName: "A", TimeSlot: "12:00", Missing: true},
		{SpotName: "B", TimeSlot: "12:00", Score: 40},
		{SpotName: "C", TimeSlot: "15:00", Missing: true},
	}

	pick, err := LeastCrowded(samples, "12:00", true)
	require.NoError(t, err)
	assert.Equal(t, "B", pick.SpotName)

	_, err = LeastCrowded(samples, "15:00", true)
	assert.ErrorIs(t, err, ErrNoRecommendation)
}

func TestDashboard_DetailChartSkipsBlankScores(t *testing.T) {
	ds := shrineDataset()
	ds.Congestion = []models.CongestionSample{
		{SpotName: "Shrine A", TimeSlot: "09:00", Missing: true},
		{SpotName: "Shrine A", TimeSlot: "12:00", Score: 85},
		{SpotName: "Shrine B", TimeSlot: "12:00", Missing: true},
	}
	svc := NewDashboardService(staticDatasets{ds: ds}, &fakeWeather{}, "")

	view, err := svc.Detail(context.Background(), "Shrine A")
	require.NoError(t, err)
	require.NotNil(t, view.Chart)
	assert.Equal(t, []string{"12:00"}, view.Chart.Labels)
	assert.Equal(t, []float64{85}, view.Chart.Values)
	require.NotNil(t, view.Summary)
	assert.Equal(t, 1, view.Summary.Samples)
	assert.Nil(t, view.AltChart)
}

func shrineDataset() *models.Dataset {
	return &models.Dataset{
		Spots: []models.Spot{
			{Name: "Shrine A", City: "Kyoto", Latitude: 35.0116, Longitude: 135.7681, HasLocation: true, Alternative: "Shrine B"},
		},
		Congestion: []models.CongestionSample{
			{SpotName: "Shrine A", TimeSlot: "12:00", Score: 85},
			{SpotName: "Shrine B", TimeSlot: "12:00", Score: 15},
		},
		HasScore: true,
	}
}

func TestDashboard_DetailEndToEnd(t *testing.T) {
	weather := &fakeWeather{}
	svc := NewDashboardService(staticDatasets{ds: shrineDataset()}, weather, "")

	view, err := svc.Detail(context.Background(), "Shrine A")
	require.NoError(t, err)

	assert.Equal(t, []string{"Kyoto"}, weather.cities)
	assert.Equal(t, "晴れ（21.5℃）", view.Weather)

	require.False(t, view.Chart.Empty())
	assert.Equal(t, []float64{85}, view.Chart.Values)
	assert.Equal(t, "o", view.Chart.Marker)

	assert.Equal(t, "Shrine B", view.Alternative)
	require.False(t, view.AltChart.Empty())
	assert.Equal(t, []float64{15}, view.AltChart.Values)
	assert.Equal(t, "Shrine B の混雑度", view.AltChart.Title)

	// Shrine B has no row in the spot table, so no distance
	assert.Nil(t, view.AltDistanceKm)
	assert.Empty(t, view.Notices)
}

func TestDashboard_DetailDefaultsToFirstSpot(t *testing.T) {
	svc := NewDashboardService(staticDatasets{ds: shrineDataset()}, &fakeWeather{}, "")

	view, err := svc.Detail(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Shrine A", view.Spot.Name)
	assert.Equal(t, []string{"Shrine A"}, view.SpotNames)
}

func TestDashboard_DetailUnknownSpot(t *testing.T) {
	svc := NewDashboardService(staticDatasets{ds: shrineDataset()}, &fakeWeather{}, "")

	_, err := svc.Detail(context.Background(), "Nope")
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestDashboard_DetailMissingAlternativeData(t *testing.T) {
	ds := shrineDataset()
	ds.Congestion = ds.Congestion[:1]
	ds.Spots = append(ds.Spots, models.Spot{Name: "Shrine B", City: "Kyoto", Latitude: 35.0270, Longitude: 135.7982, HasLocation: true})
	svc := NewDashboardService(staticDatasets{ds: ds}, &fakeWeather{}, "")

	view, err := svc.Detail(context.Background(), "Shrine A")
	require.NoError(t, err)
	assert.Nil(t, view.AltChart)
	assert.Contains(t, view.Notices, "Shrine B の混雑データがありません。")
	require.NotNil(t, view.AltDistanceKm)
	assert.InDelta(t, 3.3, *view.AltDistanceKm, 0.5)
}

func TestDashboard_DetailNoScoreColumn(t *testing.T) {
	ds := shrineDataset()
	ds.HasScore = false
	svc := NewDashboardService(staticDatasets{ds: ds}, &fakeWeather{}, "")

	view, err := svc.Detail(context.Background(), "Shrine A")
	require.NoError(t, err)
	assert.Nil(t, view.Chart)
	assert.Nil(t, view.AltChart)
	assert.Equal(t, []string{NoticeNoScoreColumn}, view.Notices)
}

func TestDashboard_Home(t *testing.T) {
	ds := &models.Dataset{Spots: spotsFixture()}
	svc := NewDashboardService(staticDatasets{ds: ds}, &fakeWeather{}, "")

	view, err := svc.Home(context.Background(), "tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo Tower", "tokyo station"}, view.Matches)
	assert.Len(t, view.Map.Spots, 2)
	assert.False(t, view.NoMatch)

	view, err = svc.Home(context.Background(), "zzz")
	require.NoError(t, err)
	assert.True(t, view.NoMatch)
	assert.Equal(t, []string{NoticeNoMatch}, view.Notices)
	assert.Empty(t, view.Map.Spots)

	view, err = svc.Home(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, view.Matches)
	assert.Len(t, view.Map.Spots, 3, "spots without coordinates are not drawn")
}

func TestDashboard_Recommend(t *testing.T) {
	ds := shrineDataset()
	ds.Congestion = append(ds.Congestion, models.CongestionSample{SpotName: "Shrine B", TimeSlot: "15:00", Score: 40})
	svc := NewDashboardService(staticDatasets{ds: ds}, &fakeWeather{}, "")

	view, err := svc.Recommend(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "12:00", view.Slot)
	require.NotNil(t, view.Pick)
	assert.Equal(t, "Shrine B", view.Pick.SpotName)
	require.NotNil(t, view.Chart)
	assert.Equal(t, models.ChartBar, view.Chart.Kind)
	assert.Equal(t, []string{"12:00", "15:00"}, view.Chart.Labels)

	view, err = svc.Recommend(context.Background(), "03:00")
	require.NoError(t, err)
	assert.Nil(t, view.Pick)
	assert.Equal(t, []string{"03:00時点の混雑データがありません。"}, view.Notices)
}

func TestDashboard_PropagatesLoadError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewDashboardService(staticDatasets{err: boom}, &fakeWeather{}, "")

	_, err := svc.Home(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Detail(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Recommend(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_Congestion(t *testing.T) {
	svc := NewDashboardService(staticDatasets{ds: shrineDataset()}, &fakeWeather{}, "")

	got, err := svc.Congestion(context.Background(), models.CongestionFilter{Spot: "Shrine B"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 15.0, got[0].Score)

	got, err = svc.Congestion(context.Background(), models.CongestionFilter{Slot: "09:00"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
