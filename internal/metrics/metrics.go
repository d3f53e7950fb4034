// Package metrics exports ledger and document activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

var _ ledger.Observer = (*Metrics)(nil)

type Metrics struct {
	registry *prometheus.Registry

	recordsAdded      *prometheus.CounterVec
	snapshotSave      prometheus.Histogram
	snapshotErrors    prometheus.Counter
	documentsRendered *prometheus.CounterVec
}

// New registers the tally collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_records_added_total",
			Help: "Records added to the ledger, by kind.",
		}, []string{"kind"}),
		snapshotSave: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tally_snapshot_save_seconds",
			Help:    "Time spent persisting a ledger snapshot.",
			Buckets: prometheus.DefBuckets,
		}),
		snapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_snapshot_save_errors_total",
			Help: "Snapshot writes that failed.",
		}),
		documentsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_documents_rendered_total",
			Help: "Documents served, by kind and whether they came from the cache.",
		}, []string{"kind", "cached"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.recordsAdded,
		m.snapshotSave,
		m.snapshotErrors,
		m.documentsRendered,
	)

	return m
}

func (m *Metrics) RecordAdded(kind ledger.Kind) {
	m.recordsAdded.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) SnapshotSaved(took time.Duration, err error) {
	m.snapshotSave.Observe(took.Seconds())

	if err != nil {
		m.snapshotErrors.Inc()
	}
}

func (m *Metrics) DocumentRendered(kind string, cached bool) {
	m.documentsRendered.WithLabelValues(kind, strconv.FormatBool(cached)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
