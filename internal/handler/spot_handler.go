package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/service"
	"github.com/jengzang/quiet-spots-go/pkg/response"
)

// SpotHandler handles HTTP requests for spots
type SpotHandler struct {
	dashboard *service.DashboardService
}

// NewSpotHandler creates a new spot handler
func NewSpotHandler(dashboard *service.DashboardService) *SpotHandler {
	return &SpotHandler{dashboard: dashboard}
}

// ListSpots handles GET /api/v1/spots
func (h *SpotHandler) ListSpots(c *gin.Context) {
	var filter models.SpotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	ds, err := h.dashboard.Dataset(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	spots := service.FilterSpots(ds.Spots, filter.Query)
	if spots == nil {
		spots = []models.Spot{}
	}

	response.Success(c, gin.H{
		"data":  spots,
		"count": len(spots),
	})
}

// GetSpotMap handles GET /api/v1/spots/map and answers raw GeoJSON
func (h *SpotHandler) GetSpotMap(c *gin.Context) {
	var filter models.SpotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	fc, err := h.dashboard.SpotFeatures(c.Request.Context(), filter.Query)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// GetSpot handles GET /api/v1/spots/:name
func (h *SpotHandler) GetSpot(c *gin.Context) {
	view, err := h.dashboard.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, view)
}

func fail(c *gin.Context, err error) {
	c.Error(err)
	code, message := classify(err)
	switch code {
	case http.StatusNotFound:
		response.NotFound(c, message)
	case http.StatusUnprocessableEntity:
		response.Unprocessable(c, message)
	default:
		response.InternalError(c, message)
	}
}
