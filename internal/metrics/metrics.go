// Package metrics exposes Prometheus instrumentation for the load/decode
// pipeline and the binary bundle cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector registered by ifclite, along
// with the registry they were registered against. A dedicated registry
// (rather than prometheus.DefaultRegisterer) keeps multiple Metrics
// instances — e.g. one per test — from colliding on duplicate collector
// names.
type Metrics struct {
	Registry *prometheus.Registry

	// Counters
	filesLoaded      prometheus.Counter
	loadErrors       prometheus.Counter
	entitiesDecoded  prometheus.Counter
	geometryFailures prometheus.Counter
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter

	// Gauges
	activeLoads  prometheus.Gauge
	lastLoadTime prometheus.Gauge

	// Histograms
	loadDuration     prometheus.Histogram
	decodeDuration   prometheus.Histogram
	fileSizeBytes    prometheus.Histogram
	tessellationTime prometheus.Histogram
}

// New creates a fresh registry and registers every ifclite metric against
// it.
func New() *Metrics {
	namespace := "ifclite"
	subsystem := "loader"

	reg := prometheus.NewRegistry()
	fac := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		filesLoaded: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_loaded_total",
			Help:      "Total number of STEP files successfully loaded",
		}),

		loadErrors: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "load_errors_total",
			Help:      "Total number of load attempts that failed outright",
		}),

		entitiesDecoded: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entities_decoded_total",
			Help:      "Total number of IFC entity instances decoded",
		}),

		geometryFailures: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "geometry_failures_total",
			Help:      "Total number of elements that fell back to LOD1 after a tessellation failure",
		}),

		cacheHits: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of loads served from the binary bundle cache",
		}),

		cacheMisses: fac.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of loads that required a full re-parse",
		}),

		activeLoads: fac.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_loads",
			Help:      "Number of loads currently in progress",
		}),

		lastLoadTime: fac.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_load_time_seconds",
			Help:      "Unix timestamp of the last successfully completed load",
		}),

		loadDuration: fac.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "load_duration_seconds",
			Help:      "Wall-clock time for an entire Load call, tokenize through tessellation",
			Buckets:   prometheus.DefBuckets,
		}),

		decodeDuration: fac.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decode_duration_seconds",
			Help:      "Time spent tokenizing and decoding entity instances",
			Buckets:   prometheus.DefBuckets,
		}),

		fileSizeBytes: fac.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "file_size_bytes",
			Help:      "Size of loaded source files in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 20), // 1KB to 512MB
		}),

		tessellationTime: fac.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tessellation_duration_seconds",
			Help:      "Time spent tessellating a single element's geometry",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// RecordLoadStarted marks a load as in progress.
func (m *Metrics) RecordLoadStarted() { m.activeLoads.Inc() }

// RecordLoadFinished records a completed load, successful or not.
func (m *Metrics) RecordLoadFinished(sizeBytes float64, durationSeconds float64, err error) {
	m.activeLoads.Dec()
	m.fileSizeBytes.Observe(sizeBytes)
	m.loadDuration.Observe(durationSeconds)
	if err != nil {
		m.loadErrors.Inc()
		return
	}
	m.filesLoaded.Inc()
	m.lastLoadTime.SetToCurrentTime()
}

// RecordDecode records the entity count and wall-clock time of one decode pass.
func (m *Metrics) RecordDecode(entityCount int, durationSeconds float64) {
	m.entitiesDecoded.Add(float64(entityCount))
	m.decodeDuration.Observe(durationSeconds)
}

// RecordTessellation records the outcome of tessellating one element.
func (m *Metrics) RecordTessellation(durationSeconds float64, failed bool) {
	m.tessellationTime.Observe(durationSeconds)
	if failed {
		m.geometryFailures.Inc()
	}
}

// RecordCacheHit records a load served entirely from the bundle cache.
func (m *Metrics) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss records a load that required a full re-parse.
func (m *Metrics) RecordCacheMiss() { m.cacheMisses.Inc() }
