package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jengzang/quiet-spots-go/internal/api"
	"github.com/jengzang/quiet-spots-go/internal/cache"
	"github.com/jengzang/quiet-spots-go/internal/config"
	"github.com/jengzang/quiet-spots-go/internal/database"
	"github.com/jengzang/quiet-spots-go/internal/repository"
	"github.com/jengzang/quiet-spots-go/internal/service"
	"github.com/jengzang/quiet-spots-go/internal/weather"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (default ./config.yaml if present)")
	pflag.String("port", "", "listen port, overrides server.port")
	pflag.String("data-source", "", "dataset source: csv or sqlite")
	pflag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath,
		config.WithFlag("server.port", pflag.Lookup("port")),
		config.WithFlag("data.source", pflag.Lookup("data-source")),
	)
	if err != nil {
		os.Stderr.WriteString(eris.ToString(err, false) + "\n")
		os.Exit(1)
	}

	if err := config.InitLogger(cfg.Log); err != nil {
		os.Stderr.WriteString(eris.ToString(err, false) + "\n")
		os.Exit(1)
	}
	defer zap.L().Sync()

	if err := run(cfg); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)

	source, closeSource, err := openSource(cfg.Data)
	if err != nil {
		return err
	}
	defer closeSource()

	if cfg.Weather.APIKey == "" {
		zap.L().Warn("weather.api_key is not set; weather lookups will report a failure")
	}

	weatherClient := weather.NewClient(cfg.Weather.APIKey,
		weather.WithBaseURL(cfg.Weather.BaseURL),
		weather.WithLanguage(cfg.Weather.Lang),
		weather.WithUnits(cfg.Weather.Units),
		weather.WithHTTPClient(&http.Client{Timeout: cfg.Weather.Timeout}),
	)

	datasets := cache.NewDatasetCache(source, cfg.Data.CacheTTL)
	dashboard := service.NewDashboardService(datasets, weatherClient, cfg.Recommend.Slot)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化路由
	router, err := api.SetupRouter(ctx, cfg, api.Dependencies{
		Dashboard: dashboard,
		Weather:   weatherClient,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("source", cfg.Data.Source),
			zap.Duration("cache_ttl", datasets.TTL()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down", zap.Duration("timeout", cfg.Server.Shutdown))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	return nil
}

// openSource builds the dataset source named by cfg.Source
func openSource(cfg config.DataConfig) (repository.DatasetSource, func(), error) {
	switch cfg.Source {
	case config.SourceSQLite:
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewDatasetRepository(db), func() { db.Close() }, nil
	default:
		return repository.NewCSVSource(cfg.SpotsPath, cfg.CongestionPath), func() {}, nil
	}
}
