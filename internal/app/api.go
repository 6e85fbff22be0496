package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/AntonikaS/floodradar-drypath-map/internal/infrastructure/http/v1"
	"github.com/AntonikaS/floodradar-drypath-map/internal/infrastructure/http/v1/handler"
	"github.com/AntonikaS/floodradar-drypath-map/internal/usecase"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/config"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/logger"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

func Run(cfg *config.Config) {
	l := logger.NewZapLogger(cfg.Logger.Level)

	l.Info("starting tiles service", "config", cfg)

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.InitTracer(telemetry.Config{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Telemetry.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		}, l)
		if err != nil {
			l.Fatal("failed to initialize telemetry", "error", err)
		}
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				l.Error("failed to shutdown telemetry", "error", err)
			}
		}()
		l.Info("telemetry initialized", "service", cfg.Telemetry.ServiceName)
	}

	tileUseCase := usecase.NewTileUseCase(
		cfg.Upstream.ExportURL,
		cfg.Upstream.Timeout,
		l,
	)

	h := handler.NewHandler(tileUseCase)

	gin.SetMode(gin.ReleaseMode)
	router := v1.NewRouter(h, l, cfg.Telemetry.Enabled)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.Server.ReadTimeout,
		WriteTimeout: cfg.HTTP.Server.WriteTimeout,
		IdleTimeout:  cfg.HTTP.Server.IdleTimeout,
	}

	go func() {
		l.Info("starting http server", "port", cfg.HTTP.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Fatal("server forced to shutdown", "error", err)
	}

	l.Info("server stopped")
}
