package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TileRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "floodtiles_requests_total",
		Help: "Total number of tile requests",
	})

	TileBadRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "floodtiles_bad_requests_total",
		Help: "Total number of tile requests rejected with 400",
	})

	UpstreamRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "floodtiles_upstream_requests_total",
		Help: "Total number of export requests to the upstream image service",
	})

	UpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "floodtiles_upstream_errors_total",
		Help: "Total number of failed upstream export requests",
	})

	UpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "floodtiles_upstream_latency_seconds",
		Help:    "Latency of upstream export fetches in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
