package models

// WeatherReading is a current-conditions lookup for a city. It is never stored.
type WeatherReading struct {
	City         string  `json:"city"`
	Description  string  `json:"description"`
	TemperatureC float64 `json:"temperatureC"`
}
