// Package metrics exposes Prometheus instruments for the HTTP layer and list mutations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "todolists"

// Metrics groups the collectors registered for one server.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	mutations *prometheus.CounterVec
	flashes   *prometheus.CounterVec
	gatherer  prometheus.Gatherer
}

// New creates and registers the collectors on reg.
// Pass a fresh prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Successful changes to session data by entity and operation.",
			},
			[]string{"entity", "op"},
		),
		flashes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "flash_messages_total",
				Help:      "Flash messages queued by kind.",
			},
			[]string{"kind"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.duration, m.mutations, m.flashes)
	return m
}

// Mutation records a successful create/update/delete on a list or todo.
func (m *Metrics) Mutation(entity, op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, op).Inc()
}

// Flash records a queued flash message.
func (m *Metrics) Flash(kind string) {
	if m == nil {
		return
	}
	m.flashes.WithLabelValues(kind).Inc()
}

// Middleware observes every request under its chi route pattern, keeping label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
