// Package metrics exposes Prometheus instrumentation for the pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	QueriesTotal      *prometheus.CounterVec
	UploadsTotal      *prometheus.CounterVec
	WebSearchesTotal  *prometheus.CounterVec
	RetrievalDuration prometheus.Histogram
	IngestDuration    prometheus.Histogram
	ConsentPending    prometheus.Gauge
}

// New creates and registers all collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finwise",
			Name:      "queries_total",
			Help:      "Queries processed, by intent and status.",
		}, []string{"intent", "status"}),

		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finwise",
			Name:      "uploads_total",
			Help:      "Uploaded files processed, by type and status.",
		}, []string{"type", "status"}),

		WebSearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finwise",
			Name:      "web_searches_total",
			Help:      "Consent-gated web searches, by outcome.",
		}, []string{"outcome"}),

		RetrievalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "finwise",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query handling latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "finwise",
			Name:      "ingest_duration_seconds",
			Help:      "Per-file ingestion latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		ConsentPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "finwise",
			Name:      "consent_pending",
			Help:      "Queries currently suspended at AWAITING_CONSENT.",
		}),
	}

	reg.MustRegister(
		m.QueriesTotal,
		m.UploadsTotal,
		m.WebSearchesTotal,
		m.RetrievalDuration,
		m.IngestDuration,
		m.ConsentPending,
	)
	return m
}

// ObserveQuery records one completed (or suspended) query.
func (m *Metrics) ObserveQuery(intent, status string, start time.Time) {
	m.QueriesTotal.WithLabelValues(intent, status).Inc()
	m.RetrievalDuration.Observe(time.Since(start).Seconds())
}

// ObserveUpload records one processed file.
func (m *Metrics) ObserveUpload(fileType, status string, start time.Time) {
	m.UploadsTotal.WithLabelValues(fileType, status).Inc()
	m.IngestDuration.Observe(time.Since(start).Seconds())
}
