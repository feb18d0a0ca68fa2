// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeOK      = "ok"
	OutcomeStatus  = "status_error"
	OutcomeFailed  = "failed"
)

// Metrics groups the counters exported on /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	Validations      *prometheus.CounterVec
	MaskRequests     *prometheus.CounterVec
	StatementFetches *prometheus.CounterVec
	Transfers        *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "techmarket",
			Name:      "registration_validations_total",
			Help:      "Registration form validations by outcome.",
		}, []string{"outcome"}),
		MaskRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "techmarket",
			Name:      "mask_requests_total",
			Help:      "Field masking requests by field.",
		}, []string{"field"}),
		StatementFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "techmarket",
			Name:      "statement_fetches_total",
			Help:      "Statement fetches by outcome.",
		}, []string{"outcome"}),
		Transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "techmarket",
			Name:      "transfers_total",
			Help:      "Simulated transfers by outcome.",
		}, []string{"outcome"}),
	}
}

// Gatherer exposes the registry for the HTTP handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveValidation counts one registration validation.
func (m *Metrics) ObserveValidation(valid bool) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(validity(valid)).Inc()
}

// ObserveMask counts one masking request for field.
func (m *Metrics) ObserveMask(field string) {
	if m == nil {
		return
	}
	m.MaskRequests.WithLabelValues(field).Inc()
}

// ObserveFetch counts one statement fetch.
func (m *Metrics) ObserveFetch(outcome string) {
	if m == nil {
		return
	}
	m.StatementFetches.WithLabelValues(outcome).Inc()
}

// ObserveTransfer counts one transfer request.
func (m *Metrics) ObserveTransfer(valid bool) {
	if m == nil {
		return
	}
	m.Transfers.WithLabelValues(validity(valid)).Inc()
}

func validity(valid bool) string {
	if valid {
		return OutcomeValid
	}
	return OutcomeInvalid
}
