package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the reconciler's Prometheus collectors on a private registry.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	pagesTotal      *prometheus.CounterVec
	eventsTotal     *prometheus.CounterVec
	droppedTotal    *prometheus.CounterVec
	reconciledTotal *prometheus.CounterVec
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.pagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft_recon",
		Name:      "provider_pages_total",
		Help:      "Provider history pages requested, by outcome",
	}, []string{"provider", "outcome"})
	m.eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft_recon",
		Name:      "normalized_events_total",
		Help:      "Events emitted by the normalizers",
	}, []string{"provider", "event_type"})
	m.droppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft_recon",
		Name:      "dropped_events_total",
		Help:      "Raw records discarded during normalization",
	}, []string{"provider", "event_type"})
	m.reconciledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft_recon",
		Name:      "reconciled_txhashes_total",
		Help:      "Transaction hashes by reconciliation outcome",
	}, []string{"event_type", "outcome"})
	m.runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft_recon",
		Name:      "runs_total",
		Help:      "Reconciliation runs, by outcome",
	}, []string{"outcome"})
	m.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nft_recon",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a reconciliation run",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})
	m.registry.MustRegister(
		m.pagesTotal,
		m.eventsTotal,
		m.droppedTotal,
		m.reconciledTotal,
		m.runsTotal,
		m.runDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObservePage(provider string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.pagesTotal.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveNormalized(provider, eventType string, kept, dropped int) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(provider, eventType).Add(float64(kept))
	m.droppedTotal.WithLabelValues(provider, eventType).Add(float64(dropped))
}

func (m *Metrics) ObserveReconciled(eventType string, matched, onlyLootex, onlyOpenSea int) {
	if m == nil {
		return
	}
	m.reconciledTotal.WithLabelValues(eventType, "matched").Add(float64(matched))
	m.reconciledTotal.WithLabelValues(eventType, "only_lootex").Add(float64(onlyLootex))
	m.reconciledTotal.WithLabelValues(eventType, "only_opensea").Add(float64(onlyOpenSea))
}

func (m *Metrics) ObserveRun(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}
