package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry of the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	storeQuery      *prometheus.HistogramVec
	ratingUpdates   *prometheus.CounterVec
	exportJobs      *prometheus.CounterVec
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result",
		}, []string{"result"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency of cache reads and writes",
			Buckets: prometheus.DefBuckets,
		}),
		storeQuery: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of store reads by store and query",
			Buckets: prometheus.DefBuckets,
		}, []string{"store", "query"}),
		ratingUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lecturer_rating_updates_total",
			Help: "Rating submissions by lecturer aggregate outcome",
		}, []string{"outcome"}),
		exportJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "export_jobs_total",
			Help: "Export jobs by terminal status",
		}, []string{"dataset", "status"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.cacheLookups, m.cacheLatency,
		m.storeQuery, m.ratingUpdates, m.exportJobs, goroutines,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
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

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordCacheLookup counts a hit, miss or error.
func (m *MetricsService) RecordCacheLookup(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
	m.cacheLatency.Observe(duration.Seconds())
}

// ObserveCacheWrite tracks cache write latency.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
}

// ObserveStoreQuery records the timing of a store read.
func (m *MetricsService) ObserveStoreQuery(store, query string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeQuery.WithLabelValues(store, query).Observe(duration.Seconds())
}

// RecordRatingUpdate counts whether a rating reached a lecturer aggregate.
func (m *MetricsService) RecordRatingUpdate(updated bool) {
	if m == nil {
		return
	}
	outcome := "unmatched"
	if updated {
		outcome = "updated"
	}
	m.ratingUpdates.WithLabelValues(outcome).Inc()
}

// RecordExportJob counts a job reaching a terminal status.
func (m *MetricsService) RecordExportJob(dataset, status string) {
	if m == nil {
		return
	}
	m.exportJobs.WithLabelValues(dataset, status).Inc()
}
