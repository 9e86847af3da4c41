package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/jengzang/quiet-spots-go/internal/config"
	"github.com/jengzang/quiet-spots-go/internal/handler"
	"github.com/jengzang/quiet-spots-go/internal/middleware"
	"github.com/jengzang/quiet-spots-go/internal/service"
	"github.com/jengzang/quiet-spots-go/internal/web"
)

// Dependencies are the services the routes are served from
type Dependencies struct {
	Dashboard *service.DashboardService
	Weather   service.WeatherDescriber
}

// SetupRouter 设置路由
// The API rate limiter sweeps idle clients until ctx is cancelled.
func SetupRouter(ctx context.Context, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	tmpl, err := web.Templates()
	if err != nil {
		return nil, eris.Wrap(err, "api: parse templates")
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Quiet spots dashboard is running",
		})
	})

	pages := handler.NewPageHandler(deps.Dashboard)
	r.GET("/", pages.Home)
	r.GET("/spots", pages.Detail)
	r.GET("/recommend", pages.Recommend)

	spotHandler := handler.NewSpotHandler(deps.Dashboard)
	congestionHandler := handler.NewCongestionHandler(deps.Dashboard)
	weatherHandler := handler.NewWeatherHandler(deps.Weather)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(ctx, cfg.Server.RateLimit, cfg.Server.RateBurst))
	{
		spots := api.Group("/spots")
		{
			spots.GET("", spotHandler.ListSpots)
			spots.GET("/map", spotHandler.GetSpotMap)
			spots.GET("/:name", spotHandler.GetSpot)
		}

		api.GET("/congestion", congestionHandler.GetCongestion)
		api.GET("/recommendation", congestionHandler.GetRecommendation)
		api.GET("/weather", weatherHandler.GetWeather)
	}

	return r, nil
}
