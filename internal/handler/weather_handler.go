package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/service"
	"github.com/jengzang/quiet-spots-go/pkg/response"
)

// WeatherHandler handles HTTP requests for weather lookups
type WeatherHandler struct {
	weather service.WeatherDescriber
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weather service.WeatherDescriber) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// GetWeather handles GET /api/v1/weather. Lookup failures still answer 200 with
// the fixed failure text.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	var filter models.WeatherFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "city is required")
		return
	}

	response.Success(c, gin.H{
		"city":    filter.City,
		"weather": h.weather.Describe(c.Request.Context(), filter.City),
	})
}
