package models

// Spot represents a tourist spot and its designated less-crowded alternative
type Spot struct {
	Name        string  `json:"name" db:"name"`
	City        string  `json:"city" db:"city"` // City name passed to the weather lookup
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`
	HasLocation bool    `json:"hasLocation" db:"has_location"` // False when either coordinate cell was empty
	Alternative string  `json:"alternative,omitempty" db:"alternative"` // Name of another spot, not enforced
}

// CongestionSample represents the congestion score of a spot at one time slot
type CongestionSample struct {
	SpotName string  `json:"spotName" db:"spot_name"`
	TimeSlot string  `json:"timeSlot" db:"time_slot"` // Opaque label such as "12:00"
	Score    float64 `json:"score" db:"score"`        // Nominally 0-100
	Missing  bool    `json:"missing,omitempty"`       // Blank score cell; Score is meaningless
}

// Dataset is the immutable in-memory view of both input tables
type Dataset struct {
	Spots      []Spot             `json:"spots"`
	Congestion []CongestionSample `json:"congestion"`

	// HasScore is false when the congestion table had no recognisable score column
	HasScore bool  `json:"hasScore"`
	LoadedAt int64 `json:"loadedAt"` // Unix timestamp in seconds
}

// FindSpot returns the first spot with the given name
func (d *Dataset) FindSpot(name string) (Spot, bool) {
	for _, s := range d.Spots {
		if s.Name == name {
			return s, true
		}
	}
	return Spot{}, false
}
