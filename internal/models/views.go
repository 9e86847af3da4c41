package models

import "fmt"

// MapView carries the spots drawn on the map and the viewport around them
type MapView struct {
	Spots     []Spot  `json:"spots"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	MinLat    float64 `json:"minLat"`
	MinLon    float64 `json:"minLon"`
	MaxLat    float64 `json:"maxLat"`
	MaxLon    float64 `json:"maxLon"`
}

// HomeView is the search page
type HomeView struct {
	Query   string   `json:"query"`
	Matches []string `json:"matches"` // Only set when a query was given
	NoMatch bool     `json:"noMatch"`
	Map     MapView  `json:"map"`
	Notices []string `json:"notices,omitempty"`
}

// DetailView is the spot detail page
type DetailView struct {
	Spot        Spot               `json:"spot"`
	SpotNames   []string           `json:"spotNames"`
	Weather     string             `json:"weather"`
	Chart       *ChartSeries       `json:"chart,omitempty"`
	Summary     *CongestionSummary `json:"summary,omitempty"`
	Alternative string             `json:"alternative,omitempty"`
	AltChart    *ChartSeries       `json:"altChart,omitempty"`

	// AltDistanceKm is set when both spots have coordinates
	AltDistanceKm *float64 `json:"altDistanceKm,omitempty"`
	Notices       []string `json:"notices,omitempty"`
}

// CongestionSummary condenses one spot's samples over the day
type CongestionSummary struct {
	Samples      int     `json:"samples"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Max          float64 `json:"max"`
	Min          float64 `json:"min"`
	BusiestSlot  string  `json:"busiestSlot"`
	QuietestSlot string  `json:"quietestSlot"`
}

// RecommendView is the least-crowded suggestion page
type RecommendView struct {
	Slot    string            `json:"slot"`
	Pick    *CongestionSample `json:"pick,omitempty"`
	Chart   *ChartSeries      `json:"chart,omitempty"`
	Notices []string          `json:"notices,omitempty"`
}

// AltDistance formats the distance to the alternative, or "" when unknown
func (v *DetailView) AltDistance() string {
	if v.AltDistanceKm == nil {
		return ""
	}
	return fmt.Sprintf("%.1f km", *v.AltDistanceKm)
}
