package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yongin-adm/roster-adp-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the roster API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	uploadsTotal    *prometheus.CounterVec
	parseWarnings   *prometheus.CounterVec
	headerFallbacks *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	uploadsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_uploads_total",
		Help: "Spreadsheet uploads by category and outcome",
	}, []string{"category", "status"})

	parseWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_parse_warnings_total",
		Help: "Non-fatal parse warnings by category and kind",
	}, []string{"category", "kind"})

	headerFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_header_fallback_total",
		Help: "Parses that located the header row via fallback instead of scan",
	}, []string{"category"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, uploadsTotal, parseWarnings, headerFallbacks, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		uploadsTotal:    uploadsTotal,
		parseWarnings:   parseWarnings,
		headerFallbacks: headerFallbacks,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordUpload counts one upload attempt.
func (m *MetricsService) RecordUpload(category string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.uploadsTotal.WithLabelValues(category, status).Inc()
}

// RecordParseWarnings counts the structured warnings of one parse run.
func (m *MetricsService) RecordParseWarnings(category string, w models.ParseWarnings) {
	if m == nil {
		return
	}
	if w.HeaderFallback {
		m.headerFallbacks.WithLabelValues(category).Inc()
	}
	add := func(kind string, n int) {
		if n > 0 {
			m.parseWarnings.WithLabelValues(category, kind).Add(float64(n))
		}
	}
	for _, n := range w.UnmappedPositions {
		add("unmapped_position", n)
	}
	for _, n := range w.UnknownDepartments {
		add("unknown_department", n)
	}
	add("catch_all_member", len(w.CatchAllMembers))
	add("skipped_row", w.SkippedRows)
	add("unparsable_date", w.UnparsableDates)
}

// RecordCacheLookup counts a cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
