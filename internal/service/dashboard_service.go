package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/spatial"
	"github.com/jengzang/quiet-spots-go/internal/stats"
)

// ErrSpotNotFound is returned when a requested spot is not in the dataset.
var ErrSpotNotFound = errors.New("spot not found")

// Notices shown to the user when data is missing.
const (
	NoticeNoMatch       = "該当するスポットが見つかりませんでした。"
	NoticeNoScoreColumn = "混雑度の列が見つかりません。"
	NoticeNoAlternative = "代替スポットが設定されていません。"
)

func noticeNoCongestion(spot string) string {
	return fmt.Sprintf("%s の混雑データがありません。", spot)
}

func noticeNoSlot(slot string) string {
	return fmt.Sprintf("%s時点の混雑データがありません。", slot)
}

// DatasetProvider hands out the current immutable dataset
type DatasetProvider interface {
	Get(ctx context.Context) (*models.Dataset, error)
}

// WeatherDescriber turns a city into a display string; it never fails
type WeatherDescriber interface {
	Describe(ctx context.Context, city string) string
}

// DashboardService builds the page views. It keeps no state between calls.
type DashboardService struct {
	datasets DatasetProvider
	weather  WeatherDescriber
	slot     string
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(datasets DatasetProvider, weather WeatherDescriber, slot string) *DashboardService {
	if slot == "" {
		slot = DefaultSlot
	}
	return &DashboardService{datasets: datasets, weather: weather, slot: slot}
}

// Dataset exposes the current dataset for read-only API calls
func (s *DashboardService) Dataset(ctx context.Context) (*models.Dataset, error) {
	return s.datasets.Get(ctx)
}

// Home builds the search page
func (s *DashboardService) Home(ctx context.Context, query string) (*models.HomeView, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, err
	}

	view := &models.HomeView{Query: query}

	matches := FilterSpots(ds.Spots, query)
	if query != "" {
		view.Matches = SpotNames(matches)
		if len(matches) == 0 {
			view.NoMatch = true
			view.Notices = append(view.Notices, NoticeNoMatch)
			view.Map = spatial.MapView(nil)
			return view, nil
		}
	}

	view.Map = spatial.MapView(matches)
	return view, nil
}

// SpotFeatures returns the GeoJSON features for the spots matching query
func (s *DashboardService) SpotFeatures(ctx context.Context, query string) (*geojson.FeatureCollection, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, err
	}
	return spatial.FeatureCollection(FilterSpots(ds.Spots, query)), nil
}

// Detail builds the spot detail page. An empty name selects the first spot.
func (s *DashboardService) Detail(ctx context.Context, name string) (*models.DetailView, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, err
	}

	names := SpotNames(ds.Spots)
	if name == "" {
		if len(names) == 0 {
			return nil, ErrSpotNotFound
		}
		name = names[0]
	}

	spot, ok := ds.FindSpot(name)
	if !ok {
		return nil, ErrSpotNotFound
	}

	view := &models.DetailView{
		Spot:        spot,
		SpotNames:   names,
		Weather:     s.weather.Describe(ctx, spot.City),
		Alternative: spot.Alternative,
	}

	if !ds.HasScore {
		view.Notices = append(view.Notices, NoticeNoScoreColumn)
		return view, nil
	}

	own := BySpot(ds.Congestion, spot.Name)
	view.Summary = stats.Summarize(own)
	view.Chart = seriesOf(own, models.ChartSeries{
		Title:  "時間帯別混雑予測",
		Kind:   models.ChartLine,
		XLabel: "時間帯",
		YLabel: "混雑度",
		Marker: "o",
	})
	if view.Chart == nil {
		view.Notices = append(view.Notices, noticeNoCongestion(spot.Name))
	}

	if spot.Alternative == "" {
		view.Notices = append(view.Notices, NoticeNoAlternative)
		return view, nil
	}

	view.AltChart = seriesOf(BySpot(ds.Congestion, spot.Alternative), models.ChartSeries{
		Title:  fmt.Sprintf("%s の混雑度", spot.Alternative),
		Kind:   models.ChartLine,
		XLabel: "時間帯",
		YLabel: "混雑度",
		Marker: "x",
		Color:  "gray",
	})
	if view.AltChart == nil {
		view.Notices = append(view.Notices, noticeNoCongestion(spot.Alternative))
	}

	if alt, ok := ds.FindSpot(spot.Alternative); ok {
		if km, ok := spatial.SpotDistanceKm(spot, alt); ok {
			view.AltDistanceKm = &km
		}
	}

	return view, nil
}

// Recommend builds the least-crowded suggestion for slot, or the configured slot
func (s *DashboardService) Recommend(ctx context.Context, slot string) (*models.RecommendView, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, err
	}

	slot = strings.TrimSpace(slot)
	if slot == "" {
		slot = s.slot
	}
	view := &models.RecommendView{Slot: slot}

	pick, err := LeastCrowded(ds.Congestion, slot, ds.HasScore)
	if errors.Is(err, ErrNoRecommendation) {
		if !ds.HasScore {
			view.Notices = append(view.Notices, NoticeNoScoreColumn)
		} else {
			view.Notices = append(view.Notices, noticeNoSlot(slot))
		}
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	view.Pick = &pick
	view.Chart = seriesOf(BySpot(ds.Congestion, pick.SpotName), models.ChartSeries{
		Title:  "混雑度",
		Kind:   models.ChartBar,
		XLabel: "時間帯",
		YLabel: "混雑度",
	})
	return view, nil
}

// Congestion returns the samples matching an optional spot and an optional slot
func (s *DashboardService) Congestion(ctx context.Context, filter models.CongestionFilter) ([]models.CongestionSample, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, err
	}

	samples := ds.Congestion
	if filter.Spot != "" {
		samples = BySpot(samples, filter.Spot)
	}
	if filter.Slot != "" {
		samples = BySlot(samples, filter.Slot)
	}
	if samples == nil {
		samples = []models.CongestionSample{}
	}
	return samples, nil
}
