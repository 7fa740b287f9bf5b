package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus collectors for the gateway. Each Server
// owns its own registry so tests never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	agentChats      *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kryptt_http_requests_total",
			Help: "HTTP requests handled, by method, path, and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kryptt_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		agentChats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kryptt_agent_chats_total",
			Help: "Chat turns processed, by agent.",
		}, []string{"agent"}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.agentChats,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest counts one handled request.
func (m *Metrics) RecordRequest(method, path string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordAgentChat counts one chat turn for the named agent.
func (m *Metrics) RecordAgentChat(agent string) {
	m.agentChats.WithLabelValues(agent).Inc()
}
