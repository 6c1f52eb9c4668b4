package metrics

import (
	"net/http"

	"escrow-relay/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private prometheus registry with the relay counters.
type Registry struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
	claims        *prometheus.CounterVec
	storeRetries  *prometheus.CounterVec
}

func NewRegistry() *Registry {
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_relay_verifications_total",
		Help: "Escrow lock verifications by outcome",
	}, []string{"result"})

	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_relay_claims_total",
		Help: "Relayed claims by action, mode and status",
	}, []string{"action", "mode", "status"})

	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_relay_secret_store_retries_total",
		Help: "Secret store operations retried after a transient error",
	}, []string{"op"})

	r := prometheus.NewRegistry()
	r.MustRegister(verifications, claims, retries)

	return &Registry{
		registry:      r,
		verifications: verifications,
		claims:        claims,
		storeRetries:  retries,
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests and exporters.
func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Registry) ObserveVerification(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.verifications.WithLabelValues(result).Inc()
}

func (m *Registry) ObserveClaim(action domain.ClaimAction, mode domain.RelayerMode, status string) {
	if mode == "" {
		mode = "none"
	}
	m.claims.WithLabelValues(string(action), string(mode), status).Inc()
}

func (m *Registry) ObserveStoreRetry(op string) {
	m.storeRetries.WithLabelValues(op).Inc()
}
