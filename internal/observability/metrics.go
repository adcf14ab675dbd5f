package observability

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec

	batchCommits *prometheus.CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process metrics, or nil when metrics are disabled.
// Every Metrics method is safe on a nil receiver.
func Current() *Metrics {
	return instance
}

// Init creates the process metrics once. It returns nil when disabled.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("Prometheus metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aspire_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aspire_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "aspire_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aspire_generation_requests_total",
			Help: "Recommendation generation calls by prompt/provider/outcome.",
		}, []string{"prompt", "provider", "outcome"}),
		generationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aspire_generation_duration_seconds",
			Help:    "Generation latency in seconds by prompt/provider.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		}, []string{"prompt", "provider"}),
		batchCommits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aspire_docstore_batch_commits_total",
			Help: "Document store batch commits by backend/outcome.",
		}, []string{"backend", "outcome"}),
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveGeneration records one generation call. outcome is ok,
// invalid_output or error.
func (m *Metrics) ObserveGeneration(prompt, provider, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	prompt = orUnknown(prompt)
	provider = orUnknown(provider)
	m.generations.WithLabelValues(prompt, provider, orUnknown(outcome)).Inc()
	if dur > 0 {
		m.generationLatency.WithLabelValues(prompt, provider).Observe(dur.Seconds())
	}
}

func (m *Metrics) ObserveBatchCommit(backend string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.batchCommits.WithLabelValues(orUnknown(backend), outcome).Inc()
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
