package models

// ChartKind selects how the page renders a series
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// ChartSeries is a single labelled series ready for the chart widget
type ChartSeries struct {
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	XLabel string    `json:"xLabel,omitempty"`
	YLabel string    `json:"yLabel,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Marker string    `json:"marker,omitempty"` // "o" circle, "x" cross
	Color  string    `json:"color,omitempty"`
}

// Empty reports whether the series has no points
func (c *ChartSeries) Empty() bool {
	return c == nil || len(c.Values) == 0
}
