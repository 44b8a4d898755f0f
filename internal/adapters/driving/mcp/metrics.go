package mcp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

const namespace = "fragments"

// metrics holds the server's Prometheus collectors. Each server has its
// own registry so tests can build many servers.
type metrics struct {
	registry *prometheus.Registry

	mutations   *prometheus.CounterVec
	toolCalls   *prometheus.CounterVec
	rateLimited prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Fragment mutations by kind",
			},
			[]string{"kind"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mcp_tool_calls_total",
				Help:      "MCP tool invocations by tool",
			},
			[]string{"tool"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mcp_rate_limited_total",
				Help:      "HTTP requests rejected by the rate limiter",
			},
		),
	}

	m.registry.MustRegister(m.mutations, m.toolCalls, m.rateLimited)
	return m
}

// observe counts a mutation. It is subscribed to the change feed.
func (m *metrics) observe(e domain.ChangeEvent) {
	m.mutations.WithLabelValues(e.Kind.String()).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
