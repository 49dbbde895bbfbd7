// Package metrics provides Prometheus metrics for the mlbspray pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Compile results used as the label on compiled_files_total.
const (
	FileCompiled = "compiled"
	FileSkipped  = "skipped"
	FileInvalid  = "invalid"
)

// Run kinds used as the label on run_duration_seconds.
const (
	RunFetch   = "fetch"
	RunCompile = "compile"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Fetch loop
	gamesCached  prometheus.Counter
	gamesSkipped prometheus.Counter
	fetchFailed  prometheus.Counter
	gamesInvalid prometheus.Counter
	fetchLatency prometheus.Histogram

	// Cache store
	cacheWrites      prometheus.Counter
	cacheWriteErrors prometheus.Counter
	cacheBytes       prometheus.Counter

	// Compilation
	compiledFiles *prometheus.CounterVec
	hitEvents     prometheus.Counter

	// Runs
	runDuration  *prometheus.HistogramVec
	lastRunUnix  *prometheus.GaugeVec
	errorsByComp *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mlbspray",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesCached = auto.NewCounter(m.counter("games_cached_total",
		"Games fetched from the Stats API and written to the cache"))
	m.gamesSkipped = auto.NewCounter(m.counter("games_skipped_total",
		"Games skipped because a valid cache artifact already existed"))
	m.fetchFailed = auto.NewCounter(m.counter("fetch_failures_total",
		"Games whose remote fetch failed"))
	m.gamesInvalid = auto.NewCounter(m.counter("schedule_rows_invalid_total",
		"Schedule rows that could not be turned into a game reference"))

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_latency_seconds",
		Help:        "Latency of play-by-play requests in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.cacheWrites = auto.NewCounter(m.counter("cache_writes_total",
		"Cache artifacts written"))
	m.cacheWriteErrors = auto.NewCounter(m.counter("cache_write_errors_total",
		"Cache artifact writes that failed"))
	m.cacheBytes = auto.NewCounter(m.counter("cache_written_bytes_total",
		"Bytes written to the cache"))

	m.compiledFiles = auto.NewCounterVec(m.counter("compiled_files_total",
		"Cache artifacts visited by the compilation pass, by result"),
		[]string{"result"})
	m.hitEvents = auto.NewCounter(m.counter("hit_events_total",
		"Batted-ball events extracted"))

	m.runDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Wall time of a fetch or compile run in seconds",
		Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		ConstLabels: m.constLabels,
	}, []string{"kind"})
	m.lastRunUnix = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_unix",
		Help:        "Unix timestamp of the last finished run",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.errorsByComp = auto.NewCounterVec(m.counter("errors_by_component_total",
		"Errors by component and type"),
		[]string{"component", "error_type"})
}

// RecordGameCached increments the cached games counter.
func RecordGameCached() {
	if globalManager.enabled {
		globalManager.gamesCached.Inc()
	}
}

// RecordGameSkipped increments the skipped games counter.
func RecordGameSkipped() {
	if globalManager.enabled {
		globalManager.gamesSkipped.Inc()
	}
}

// RecordFetchFailed increments the failed fetch counter.
func RecordFetchFailed() {
	if globalManager.enabled {
		globalManager.fetchFailed.Inc()
	}
}

// RecordGameInvalid increments the invalid schedule row counter.
func RecordGameInvalid() {
	if globalManager.enabled {
		globalManager.gamesInvalid.Inc()
	}
}

// RecordFetchLatency records a play-by-play request latency in seconds.
func RecordFetchLatency(seconds float64) {
	if globalManager.enabled {
		globalManager.fetchLatency.Observe(seconds)
	}
}

// RecordCacheWrite counts a successful cache write of n bytes.
func RecordCacheWrite(n int) {
	if globalManager.enabled {
		globalManager.cacheWrites.Inc()
		globalManager.cacheBytes.Add(float64(n))
	}
}

// RecordCacheWriteError counts a failed cache write.
func RecordCacheWriteError() {
	if globalManager.enabled {
		globalManager.cacheWriteErrors.Inc()
	}
}

// RecordCompiledFile counts one artifact visited by the compilation pass.
func RecordCompiledFile(result string) {
	if globalManager.enabled {
		globalManager.compiledFiles.WithLabelValues(result).Inc()
	}
}

// RecordHitEvents adds n extracted events.
func RecordHitEvents(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.hitEvents.Add(float64(n))
	}
}

// RecordRunDuration records a finished run of the given kind.
func RecordRunDuration(kind string, seconds float64, finishedUnix int64) {
	if globalManager.enabled {
		globalManager.runDuration.WithLabelValues(kind).Observe(seconds)
		globalManager.lastRunUnix.WithLabelValues(kind).Set(float64(finishedUnix))
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByComp.WithLabelValues(component, errorType).Inc()
	}
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry to path in the node-exporter textfile
// format. The file is replaced atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return ErrNoTextfilePath
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrTextfileWrite, err)
	}
	return nil
}
