package usecase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AntonikaS/floodradar-drypath-map/internal/mercator"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngStub = []byte("\x89PNG\r\n\x1a\nstub tile bytes")

func newTestUseCase(exportURL string) *TileUseCase {
	return NewTileUseCase(exportURL, 2*time.Second, logger.FromContext(context.Background()))
}

func TestGetTileBuildsExportRequest(t *testing.T) {
	var gotQuery map[string]string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write(pngStub)
	}))
	defer upstream.Close()

	uc := newTestUseCase(upstream.URL)

	stream, err := uc.GetTile(context.Background(), 10, 100, 200)
	require.NoError(t, err)
	defer stream.Body.Close()

	bounds := mercator.TileBounds(10, 100, 200)
	wantBBox := formatCoord(bounds.MinX) + "," + formatCoord(bounds.MinY) + "," +
		formatCoord(bounds.MaxX) + "," + formatCoord(bounds.MaxY)

	assert.Equal(t, wantBBox, gotQuery["bbox"])
	assert.Equal(t, "102100", gotQuery["bboxSR"])
	assert.Equal(t, "102100", gotQuery["imageSR"])
	assert.Equal(t, "256,256", gotQuery["size"])
	assert.Equal(t, "png32", gotQuery["format"])
	assert.Equal(t, "true", gotQuery["transparent"])
	assert.Equal(t, "image", gotQuery["f"])
}

func TestGetTileRelaysBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngStub)
	}))
	defer upstream.Close()

	uc := newTestUseCase(upstream.URL)

	stream, err := uc.GetTile(context.Background(), 10, 100, 200)
	require.NoError(t, err)
	defer stream.Body.Close()

	assert.Equal(t, http.StatusOK, stream.StatusCode)
	assert.Equal(t, "image/png", stream.ContentType)
	assert.Equal(t, int64(len(pngStub)), stream.ContentLength)

	body, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, pngStub, body)
}

func TestGetTileUpstreamErrorText(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("tile not found"))
	}))
	defer upstream.Close()

	uc := newTestUseCase(upstream.URL)

	stream, err := uc.GetTile(context.Background(), 10, 100, 200)
	require.Nil(t, stream)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Equal(t, "tile not found", upstreamErr.Message)
}

func TestGetTileUpstreamErrorWithoutBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	uc := newTestUseCase(upstream.URL)

	_, err := uc.GetTile(context.Background(), 10, 100, 200)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "upstream returned status 500", upstreamErr.Message)
}

func TestGetTileEmptySuccessBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	uc := newTestUseCase(upstream.URL)

	_, err := uc.GetTile(context.Background(), 10, 100, 200)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
}

func TestGetTileNetworkFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	uc := newTestUseCase(upstream.URL)

	_, err := uc.GetTile(context.Background(), 10, 100, 200)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
}
