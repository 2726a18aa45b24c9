// Package metrics exposes Prometheus counters for classification and
// advisory activity. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	classifications *prometheus.CounterVec
	advisories      *prometheus.CounterVec
	actions         *prometheus.CounterVec
	fieldEvents     *prometheus.CounterVec
	messages        *prometheus.CounterVec
	listReloads     *prometheus.CounterVec
}

// New creates Metrics on a fresh registry. withRuntime adds the Go and
// process collectors, which tests usually leave out.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_classifications_total",
				Help: "Domains classified, by tier",
			},
			[]string{"tier"},
		),
		advisories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_advisories_total",
				Help: "Advisories presented, by trigger and tier",
			},
			[]string{"trigger", "tier"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_actions_total",
				Help: "Advisory buttons pressed, by action",
			},
			[]string{"action"},
		),
		fieldEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_sensitive_fields_total",
				Help: "Sensitive field focus events, by kind",
			},
			[]string{"kind"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_messages_total",
				Help: "User chat messages answered, by intent",
			},
			[]string{"intent"},
		),
		listReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeharbor_sitelist_reloads_total",
				Help: "Site list reload attempts, by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(m.classifications, m.advisories, m.actions, m.fieldEvents, m.messages, m.listReloads)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Classified(tier string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(tier).Inc()
}

func (m *Metrics) AdvisoryOpened(trigger, tier string) {
	if m == nil {
		return
	}
	m.advisories.WithLabelValues(trigger, tier).Inc()
}

func (m *Metrics) ActionTaken(action string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action).Inc()
}

func (m *Metrics) FieldEvent(kind string) {
	if m == nil {
		return
	}
	m.fieldEvents.WithLabelValues(kind).Inc()
}

func (m *Metrics) MessageAnswered(intent string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(intent).Inc()
}

// ListReload records a site list reload; ok=false counts a failed attempt.
func (m *Metrics) ListReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.listReloads.WithLabelValues(result).Inc()
}
