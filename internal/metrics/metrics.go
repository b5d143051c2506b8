package metrics

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	signalsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portreclaim",
			Subsystem: "terminate",
			Name:      "signals_sent_total",
			Help:      "Termination signals delivered, by signal name.",
		}, []string{"signal"},
	)
	backendHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portreclaim",
			Subsystem: "discovery",
			Name:      "backend_hits_total",
			Help:      "Discovery backends that produced the authoritative PID set.",
		}, []string{"backend"},
	)
	backendErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portreclaim",
			Subsystem: "discovery",
			Name:      "backend_errors_total",
			Help:      "Discovery backend failures (missing tool or query error).",
		}, []string{"backend"},
	)
	outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portreclaim",
			Subsystem: "reclaim",
			Name:      "outcomes_total",
			Help:      "Final reclamation outcomes per run.",
		}, []string{"outcome"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{signalsSent, backendHits, backendErrors, outcomes}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Push delivers all registered metrics to a Prometheus Pushgateway.
// The tool is one-shot, so push-on-exit replaces a scrape endpoint.
func Push(url, job string) error {
	return push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push()
}

// Below are lightweight helpers used by internal packages to record metrics.
// They no-op if Register hasn't been called.

func IncSignal(signal string) {
	if regOK.Load() {
		signalsSent.WithLabelValues(signal).Inc()
	}
}

func IncBackendHit(backend string) {
	if regOK.Load() {
		backendHits.WithLabelValues(backend).Inc()
	}
}

func IncBackendError(backend string) {
	if regOK.Load() {
		backendErrors.WithLabelValues(backend).Inc()
	}
}

func IncOutcome(outcome string) {
	if regOK.Load() {
		outcomes.WithLabelValues(outcome).Inc()
	}
}
