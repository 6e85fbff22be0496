package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/AntonikaS/floodradar-drypath-map/internal/usecase"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/logger"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const (
	missingCoordinatesError = "Missing tile coordinates"
	invalidCoordinatesError = "Invalid tile coordinates"

	// tileCacheControl lets clients reuse a tile across one map session
	// while still picking up refreshed source imagery promptly.
	tileCacheControl = "public, max-age=600"
)

func (h *Handler) Tile(c *gin.Context) {
	log, _ := c.Get("logger")
	l := log.(logger.Logger)

	metrics.TileRequests.Inc()

	strZ := c.Param("z")
	strX := c.Param("x")
	strY := c.Param("y")

	if strZ == "" || strX == "" || strY == "" {
		metrics.TileBadRequests.Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": missingCoordinatesError,
		})
		return
	}

	z, okZ := parseCoordinate(strZ)
	x, okX := parseCoordinate(strX)
	y, okY := parseCoordinate(strY)
	if !okZ || !okX || !okY {
		metrics.TileBadRequests.Inc()
		l.Warn("invalid tile coordinates", "z", strZ, "x", strX, "y", strY)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": invalidCoordinatesError,
		})
		return
	}

	l.Info("tile request", "z", z, "x", x, "y", y)

	stream, err := h.tileUseCase.GetTile(c.Request.Context(), z, x, y)
	if err != nil {
		var upstreamErr *usecase.UpstreamError
		if errors.As(err, &upstreamErr) {
			c.JSON(upstreamErr.StatusCode, gin.H{
				"error": upstreamErr.Message,
			})
			return
		}

		l.Error("failed to get tile", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "failed to get tile",
		})
		return
	}
	defer stream.Body.Close()

	// Relay status and headers first, then stream the body through.
	c.DataFromReader(stream.StatusCode, stream.ContentLength, stream.ContentType, stream.Body, map[string]string{
		"Cache-Control": tileCacheControl,
	})
}

// TileMissing answers the shortened tile routes (fewer than three path
// segments) with the coordinate-missing error instead of a bare 404.
func (h *Handler) TileMissing(c *gin.Context) {
	metrics.TileBadRequests.Inc()
	c.JSON(http.StatusBadRequest, gin.H{
		"error": missingCoordinatesError,
	})
}

// parseCoordinate accepts any finite number; NaN and infinities parse but
// are rejected.
func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
