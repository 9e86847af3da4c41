package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/service"
)

// PageHandler renders the three dashboard pages
type PageHandler struct {
	dashboard *service.DashboardService
}

// NewPageHandler creates a new page handler
func NewPageHandler(dashboard *service.DashboardService) *PageHandler {
	return &PageHandler{dashboard: dashboard}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	var filter models.SpotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.renderError(c, http.StatusBadRequest, "検索条件が正しくありません。")
		return
	}

	view, err := h.dashboard.Home(c.Request.Context(), filter.Query)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title": "ホーム",
		"Page":  "home",
		"View":  view,
	})
}

// Detail handles GET /spots
func (h *PageHandler) Detail(c *gin.Context) {
	var filter models.DetailFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.renderError(c, http.StatusBadRequest, "スポットの指定が正しくありません。")
		return
	}

	view, err := h.dashboard.Detail(c.Request.Context(), filter.Spot)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "detail.tmpl", gin.H{
		"Title": view.Spot.Name,
		"Page":  "detail",
		"View":  view,
	})
}

// Recommend handles GET /recommend
func (h *PageHandler) Recommend(c *gin.Context) {
	var filter models.RecommendFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.renderError(c, http.StatusBadRequest, "時間帯の指定が正しくありません。")
		return
	}

	view, err := h.dashboard.Recommend(c.Request.Context(), filter.Slot)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "recommend.tmpl", gin.H{
		"Title": "おすすめ",
		"Page":  "recommend",
		"View":  view,
	})
}

func (h *PageHandler) fail(c *gin.Context, err error) {
	c.Error(err)
	code, message := classify(err)
	if code == http.StatusUnprocessableEntity {
		code = http.StatusInternalServerError
	}
	h.renderError(c, code, message)
}

func (h *PageHandler) renderError(c *gin.Context, code int, message string) {
	c.HTML(code, "error.tmpl", gin.H{
		"Title":   "エラー",
		"Page":    "",
		"Message": message,
	})
}
