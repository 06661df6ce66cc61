// Package observability содержит Prometheus-метрики сервера.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчики и гистограммы основных операций приложения.
type Metrics struct {
	SignupsTotal *prometheus.CounterVec // labels: outcome={ok,conflict,invalid,error}
	LoginsTotal  *prometheus.CounterVec // labels: outcome={ok,denied,error}

	PredictionsTotal *prometheus.CounterVec // labels: outcome={ok,upstream_error,error}
	UpstreamDuration prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в дефолтном реестре Prometheus.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith регистрирует метрики в переданном реестре.
// Тесты передают сюда отдельный prometheus.NewRegistry,
// чтобы не конфликтовать с дефолтным.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakecast",
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		}, []string{"outcome"}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakecast",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakecast",
			Name:      "predictions_total",
			Help:      "Prediction submissions by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakecast",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of calls to the external prediction service.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	reg.MustRegister(
		m.SignupsTotal,
		m.LoginsTotal,
		m.PredictionsTotal,
		m.UpstreamDuration,
	)

	return m
}
