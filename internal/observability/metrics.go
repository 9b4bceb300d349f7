// Package observability exposes Prometheus metrics for the service.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoviz_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	scaleCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoviz_scale_cache_results_total",
			Help: "Scale cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	featuresStyled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geoviz_features_styled_total",
			Help: "Features that received a full render-attribute bundle.",
		},
	)

	featuresDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geoviz_features_dropped_total",
			Help: "Rows dropped because their geometry failed to parse.",
		},
	)

	queryPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geoviz_query_pages_total",
			Help: "Result pages fetched from the warehouse.",
		},
	)

	iconCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geoviz_icon_cache_entries",
			Help: "Circle icons currently held in the LRU cache.",
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "geoviz_build_info",
			Help: "Build information for the binary (value is always 1).",
		},
		[]string{"version"},
	)
)

func ObserveHTTP(method, route string, status int) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func IncScaleCacheHit()  { scaleCacheResults.WithLabelValues("hit").Inc() }
func IncScaleCacheMiss() { scaleCacheResults.WithLabelValues("miss").Inc() }

func AddFeaturesStyled(n int)  { featuresStyled.Add(float64(n)) }
func AddFeaturesDropped(n int) { featuresDropped.Add(float64(n)) }

func IncQueryPage() { queryPages.Inc() }

func SetIconCacheSize(n int) { iconCacheSize.Set(float64(n)) }

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
