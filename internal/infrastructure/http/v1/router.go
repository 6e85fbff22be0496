package v1

import (
	"time"

	"github.com/AntonikaS/floodradar-drypath-map/internal/infrastructure/http/v1/handler"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/logger"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(handler *handler.Handler, l logger.Logger, telemetryEnabled bool) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())

	if telemetryEnabled {
		r.Use(telemetry.GinMiddleware("floodradar-tiles"))
	}

	r.Use(ginZapLogger(l))

	api := r.Group("/api")
	v1 := api.Group("/v1")

	v1.GET("/healthz", handler.Healthz)

	tile := v1.Group("/tile")
	tile.GET("/:z/:x/:y", handler.Tile)
	// Truncated addresses still get the structured 400 body.
	tile.GET("/:z/:x", handler.TileMissing)
	tile.GET("/:z", handler.TileMissing)
	tile.GET("", handler.TileMissing)

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func ginZapLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", l)

		start := time.Now()

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		l.Info("request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}
