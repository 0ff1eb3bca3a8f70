// Package metrics wraps the Prometheus collectors this engine exposes,
// constructed explicitly per call site rather than a package-level singleton:
// callers build one with New and thread it through Config structs, or pass
// nil to disable instrumentation entirely.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the engine's collectors. A nil *Metrics is valid: every
// method is a no-op on a nil receiver, so components can hold an optional
// *Metrics field and call through it unconditionally.
type Metrics struct {
	DocsIndexedTotal       prometheus.Counter
	InvertLatency          prometheus.Histogram
	ChunkDumpsTotal        *prometheus.CounterVec
	ChunksQuarantinedTotal prometheus.Counter
	TermLookupsTotal       prometheus.Counter
	QueryLatency           *prometheus.HistogramVec
	InflightTasks          prometheus.Gauge
}

// New creates the engine's collectors and registers them with reg. Passing
// prometheus.NewRegistry() (rather than prometheus.DefaultRegisterer) keeps
// multiple engine instances in one process, e.g. under test, from colliding
// on collector names.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ftindex_docs_indexed_total",
			Help: "Total rows folded into a ColumnInverter by Insert.",
		}),
		InvertLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ftindex_invert_latency_seconds",
			Help:    "Time spent tokenizing and inverting one batch.",
			Buckets: prometheus.DefBuckets,
		}),
		ChunkDumpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ftindex_chunk_dumps_total",
			Help: "Chunk dump attempts by outcome (ok, error).",
		}, []string{"outcome"}),
		ChunksQuarantinedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ftindex_chunks_quarantined_total",
			Help: "Chunks dropped from query fan-out after a read or format error.",
		}),
		TermLookupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ftindex_term_lookups_total",
			Help: "Total ColumnIndexReader.Lookup calls.",
		}),
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ftindex_query_latency_seconds",
			Help:    "Time spent building and draining one query's iterator tree.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		InflightTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ftindex_inflight_tasks",
			Help: "MemoryIndexer.Insert calls dispatched but not yet inverted.",
		}),
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.InvertLatency,
		m.ChunkDumpsTotal,
		m.ChunksQuarantinedTotal,
		m.TermLookupsTotal,
		m.QueryLatency,
		m.InflightTasks,
	)
	return m
}

func (m *Metrics) ObserveInsert(rows int) {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.Add(float64(rows))
}

func (m *Metrics) ObserveInvertSeconds(seconds float64) {
	if m == nil {
		return
	}
	m.InvertLatency.Observe(seconds)
}

func (m *Metrics) ObserveDump(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ChunkDumpsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveQuarantine() {
	if m == nil {
		return
	}
	m.ChunksQuarantinedTotal.Inc()
}

func (m *Metrics) ObserveLookup() {
	if m == nil {
		return
	}
	m.TermLookupsTotal.Inc()
}

func (m *Metrics) ObserveQuerySeconds(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.QueryLatency.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) SetInflightTasks(n int64) {
	if m == nil {
		return
	}
	m.InflightTasks.Set(float64(n))
}
