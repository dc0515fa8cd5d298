// Package metrics defines the Prometheus collectors for the HR service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the HR collectors.
type Metrics struct {
	RolesCreated    *prometheus.CounterVec
	UnknownVariants prometheus.Counter
	TotalsComputed  *prometheus.CounterVec
	InvalidValues   prometheus.Counter
	SharedInstances prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RolesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_roles_created_total",
			Help: "Roles produced by the registry, by label",
		}, []string{"role"}),
		UnknownVariants: f.NewCounter(prometheus.CounterOpts{
			Name: "hr_role_unknown_variant_total",
			Help: "Role lookups rejected for an unknown discriminator",
		}),
		TotalsComputed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_salary_totals_computed_total",
			Help: "Salary totals computed, by policy name",
		}, []string{"policy"}),
		InvalidValues: f.NewCounter(prometheus.CounterOpts{
			Name: "hr_invalid_value_total",
			Help: "Employees rejected for an invalid salary or policy",
		}),
		SharedInstances: f.NewGauge(prometheus.GaugeOpts{
			Name: "hr_system_constructions",
			Help: "Times the shared HR system has been constructed (expected 0 or 1)",
		}),
	}
}

// RoleCreated records a successful role lookup.
func (m *Metrics) RoleCreated(label string) {
	m.RolesCreated.WithLabelValues(label).Inc()
}

// UnknownVariant records a rejected discriminator.
func (m *Metrics) UnknownVariant() {
	m.UnknownVariants.Inc()
}

// TotalComputed records a computed total for policy.
func (m *Metrics) TotalComputed(policy string) {
	m.TotalsComputed.WithLabelValues(policy).Inc()
}

// InvalidValue records a rejected employee.
func (m *Metrics) InvalidValue() {
	m.InvalidValues.Inc()
}

// ObserveConstructions publishes the shared instance construction count.
func (m *Metrics) ObserveConstructions(n int64) {
	m.SharedInstances.Set(float64(n))
}
