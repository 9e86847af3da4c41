package models

// SpotFilter represents query parameters for searching spots
type SpotFilter struct {
	Query string `form:"q"`
}

// DetailFilter represents query parameters for the detail page
type DetailFilter struct {
	Spot string `form:"spot"` // Defaults to the first spot name
}

// CongestionFilter represents query parameters for congestion lookups
type CongestionFilter struct {
	Spot string `form:"spot"`
	Slot string `form:"slot"`
}

// RecommendFilter represents query parameters for the recommendation
type RecommendFilter struct {
	Slot string `form:"slot"` // Defaults to the configured slot
}

// WeatherFilter represents query parameters for a weather lookup
type WeatherFilter struct {
	City string `form:"city" binding:"required"`
}
