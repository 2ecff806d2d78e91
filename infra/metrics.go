package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Telemetry holds the Prometheus instruments of the monitor loops and the
// delivery pipeline.
type Telemetry struct {
	registry *prometheus.Registry

	EvaluationsTotal    *prometheus.CounterVec
	EvaluationDuration  *prometheus.HistogramVec
	AlertsTriggered     *prometheus.CounterVec
	AlertsResolved      *prometheus.CounterVec
	AlertsCurrent       *prometheus.GaugeVec
	DeliveriesTotal     *prometheus.CounterVec
	SeriesPointsQueried *prometheus.CounterVec
}

func NewTelemetry() *Telemetry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Telemetry{
		registry: registry,
		EvaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "offkey_monitor_evaluations_total",
			Help: "Monitor evaluation passes, by monitor and outcome.",
		}, []string{"monitor", "outcome"}),
		EvaluationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "offkey_monitor_evaluation_duration_seconds",
			Help:    "Duration of monitor evaluation passes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"monitor"}),
		AlertsTriggered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "offkey_alerts_triggered_total",
			Help: "Alerts triggered, by monitor and severity.",
		}, []string{"monitor", "severity"}),
		AlertsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "offkey_alerts_resolved_total",
			Help: "Alerts resolved, by monitor.",
		}, []string{"monitor"}),
		AlertsCurrent: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "offkey_alerts_current",
			Help: "Alerts currently in the store, by status.",
		}, []string{"status"}),
		DeliveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "offkey_pagerduty_deliveries_total",
			Help: "PagerDuty event deliveries, by action and outcome.",
		}, []string{"action", "outcome"}),
		SeriesPointsQueried: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "offkey_series_points_queried_total",
			Help: "Series points returned by metric queries, by monitor.",
		}, []string{"monitor"}),
	}
}

func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
