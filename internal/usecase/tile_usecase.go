package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AntonikaS/floodradar-drypath-map/internal/mercator"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/logger"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/metrics"
)

// TileStream carries an upstream tile response for streaming relay. The
// caller owns Body and must close it.
type TileStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	StatusCode    int
}

// UpstreamError reports a failed upstream export request with the status
// code the caller should relay.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type TileUseCase struct {
	exportURL  string
	httpClient *http.Client
	logger     logger.Logger
}

func NewTileUseCase(exportURL string, timeout time.Duration, l logger.Logger) *TileUseCase {
	return &TileUseCase{
		exportURL: exportURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: l,
	}
}

// GetTile projects tile (z, x, y) to a Web Mercator bounding box and
// fetches the matching 256x256 PNG from the upstream export service.
// Exactly one upstream request is made; failures are not retried.
func (uc *TileUseCase) GetTile(ctx context.Context, z, x, y float64) (*TileStream, error) {
	bounds := mercator.TileBounds(z, x, y)

	exportURL := uc.exportURL + "?" + exportQuery(bounds).Encode()
	uc.logger.Debug("fetching from upstream", "url", exportURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		uc.logger.Error("failed to create request", "error", err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	metrics.UpstreamRequests.Inc()

	resp, err := uc.httpClient.Do(req)
	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrors.Inc()
		uc.logger.Error("failed to fetch from upstream", "error", err)
		return nil, &UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "failed to fetch tile from upstream",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		metrics.UpstreamErrors.Inc()
		uc.logger.Warn("upstream returned non-success",
			"status", resp.StatusCode,
			"duration", time.Since(start),
		)
		return nil, upstreamErrorFromResponse(resp)
	}

	// A 2xx with a declared empty body means the export produced nothing.
	if resp.ContentLength == 0 {
		resp.Body.Close()
		metrics.UpstreamErrors.Inc()
		return nil, &UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "upstream returned an empty response",
		}
	}

	uc.logger.Info("fetched tile",
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"content_length", resp.ContentLength,
	)

	return &TileStream{
		Body:          resp.Body,
		ContentType:   "image/png",
		ContentLength: resp.ContentLength,
		StatusCode:    resp.StatusCode,
	}, nil
}

// exportQuery builds the ArcGIS export request for one tile: the projected
// bbox in Web Mercator (WKID 102100), a fixed 256x256 output, transparent
// PNG32, and no upstream caching.
func exportQuery(b mercator.Bounds) url.Values {
	q := url.Values{}
	q.Set("bbox", strings.Join([]string{
		formatCoord(b.MinX),
		formatCoord(b.MinY),
		formatCoord(b.MaxX),
		formatCoord(b.MaxY),
	}, ","))
	q.Set("bboxSR", strconv.Itoa(mercator.SpatialReference))
	q.Set("imageSR", strconv.Itoa(mercator.SpatialReference))
	q.Set("size", fmt.Sprintf("%d,%d", mercator.TileSize, mercator.TileSize))
	q.Set("format", "png32")
	q.Set("transparent", "true")
	q.Set("f", "image")
	return q
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// upstreamErrorFromResponse extracts the upstream error text best-effort;
// an unreadable or empty body falls back to a generic status message.
func upstreamErrorFromResponse(resp *http.Response) *UpstreamError {
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusBadGateway
	}

	message := fmt.Sprintf("upstream returned status %d", resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil {
		if text := strings.TrimSpace(string(body)); text != "" {
			message = text
		}
	}

	return &UpstreamError{
		StatusCode: status,
		Message:    message,
	}
}
