package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/service"
	"github.com/jengzang/quiet-spots-go/pkg/response"
)

// CongestionHandler handles HTTP requests for congestion samples and recommendations
type CongestionHandler struct {
	dashboard *service.DashboardService
}

// NewCongestionHandler creates a new congestion handler
func NewCongestionHandler(dashboard *service.DashboardService) *CongestionHandler {
	return &CongestionHandler{dashboard: dashboard}
}

// GetCongestion handles GET /api/v1/congestion
func (h *CongestionHandler) GetCongestion(c *gin.Context) {
	var filter models.CongestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	samples, err := h.dashboard.Congestion(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  samples,
		"count": len(samples),
	})
}

// GetRecommendation handles GET /api/v1/recommendation
func (h *CongestionHandler) GetRecommendation(c *gin.Context) {
	var filter models.RecommendFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	view, err := h.dashboard.Recommend(c.Request.Context(), filter.Slot)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, view)
}
