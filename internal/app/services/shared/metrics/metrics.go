package metrics

import "github.com/prometheus/client_golang/prometheus"

// ClinicMetrics counts best-effort side effects, outbox replays and HTTP latency.
type ClinicMetrics struct {
	sideEffectsTotal  *prometheus.CounterVec
	outboxReplayTotal *prometheus.CounterVec
	outboxDepth       prometheus.Gauge
	requestDuration   *prometheus.HistogramVec
}

func NewClinicMetrics(reg prometheus.Registerer) *ClinicMetrics {
	m := &ClinicMetrics{
		sideEffectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "side_effects_total",
			Help:      "Best-effort side effects by effect and outcome",
		}, []string{"effect", "outcome"}),
		outboxReplayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "outbox_replay_total",
			Help:      "Outbox jobs replayed by the repair worker",
		}, []string{"kind", "outcome"}),
		outboxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic",
			Name:      "outbox_depth",
			Help:      "Jobs waiting in the side-effect outbox at the last worker run",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sideEffectsTotal, m.outboxReplayTotal, m.outboxDepth, m.requestDuration)
	return m
}

func (m *ClinicMetrics) ObserveSideEffect(effect, outcome string) {
	if m == nil {
		return
	}
	m.sideEffectsTotal.WithLabelValues(effect, outcome).Inc()
}

func (m *ClinicMetrics) ObserveOutboxReplay(kind, outcome string) {
	if m == nil {
		return
	}
	m.outboxReplayTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *ClinicMetrics) SetOutboxDepth(depth int64) {
	if m == nil {
		return
	}
	m.outboxDepth.Set(float64(depth))
}

func (m *ClinicMetrics) ObserveRequest(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, status).Observe(seconds)
}
