package metrics

import "github.com/prometheus/client_golang/prometheus"

// Report engine Prometheus metrics.
var (
	SelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evalview",
			Name:      "selections_total",
			Help:      "Total number of document selections",
		},
		[]string{"outcome"}, // "document" / "aggregate" / "unknown"
	)

	ActiveView = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "evalview",
			Name:      "active_view",
			Help:      "Currently displayed view kind (1 = active)",
		},
		[]string{"kind"}, // "aggregate" / "document"
	)

	ViewerTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evalview",
			Name:      "viewer_transitions_total",
			Help:      "Document viewer state transitions",
		},
		[]string{"phase"},
	)

	StaleRendersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "evalview",
			Name:      "viewer_stale_renders_total",
			Help:      "Page renders discarded because a newer navigation superseded them",
		},
	)

	PageRenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "evalview",
			Name:      "viewer_page_render_duration_seconds",
			Help:      "Page render duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers the report engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SelectionsTotal)
	prometheus.MustRegister(ActiveView)
	prometheus.MustRegister(ViewerTransitionsTotal)
	prometheus.MustRegister(StaleRendersTotal)
	prometheus.MustRegister(PageRenderDuration)
	engineMetricsRegistered = true
}
