package runtime

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts hook invocations across every model sharing it.
type Metrics struct {
	hooks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	plugins  *prometheus.GaugeVec
}

// NewMetrics registers the runtime collectors on reg (the default
// registerer when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		hooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskrt",
			Name:      "plugin_hooks_total",
			Help:      "Lifecycle hook invocations by plugin, hook and result.",
		}, []string{"plugin", "hook", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskrt",
			Name:      "plugin_hook_duration_seconds",
			Help:      "Lifecycle hook latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"hook"}),
		plugins: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "taskrt",
			Name:      "plugins",
			Help:      "Plugins per lifecycle state.",
		}, []string{"state"}),
	}
	reg.MustRegister(m.hooks, m.duration, m.plugins)
	return m
}

func (m *Metrics) observe(plugin, hook, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.hooks.WithLabelValues(plugin, hook, result).Inc()
	if result != resultRejected {
		m.duration.WithLabelValues(hook).Observe(took.Seconds())
	}
}

func (m *Metrics) moved(from, to string) {
	if m == nil || from == to {
		return
	}
	if from != "" {
		m.plugins.WithLabelValues(from).Dec()
	}
	m.plugins.WithLabelValues(to).Inc()
}

const (
	resultOK       = "ok"
	resultFailed   = "failed"
	resultRejected = "rejected"
)
