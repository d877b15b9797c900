// Package metrics records Prometheus metrics for the HTTP API and marketplace activity.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the server exports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsTotal         *prometheus.CounterVec

	productsCreated prometheus.Counter
	favToggles      *prometheus.CounterVec
	messagesTotal   *prometheus.CounterVec
	loginCodesSent  *prometheus.CounterVec
	liveViewers     prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carrot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrot_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"type"},
		),

		productsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "carrot_products_created_total",
			Help: "Total number of products listed",
		}),
		favToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrot_fav_toggles_total",
				Help: "Total favorite toggles by resulting state",
			},
			[]string{"state"},
		),
		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrot_messages_total",
				Help: "Total chat and stream messages posted",
			},
			[]string{"kind"},
		),
		loginCodesSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrot_login_codes_total",
				Help: "Total login codes issued by delivery channel",
			},
			[]string{"channel"},
		),
		liveViewers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "carrot_live_viewers",
			Help: "Number of connected live room viewers",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		m.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())

		if wrapped.status >= 400 {
			errorType := "client_error"
			if wrapped.status >= 500 {
				errorType = "server_error"
			}
			m.errorsTotal.WithLabelValues(errorType).Inc()
		}
	})
}

func (m *Metrics) ProductCreated() {
	m.productsCreated.Inc()
}

func (m *Metrics) FavToggled(liked bool) {
	state := "removed"
	if liked {
		state = "added"
	}
	m.favToggles.WithLabelValues(state).Inc()
}

// MessagePosted counts a message in a "chat" or "stream" room.
func (m *Metrics) MessagePosted(kind string) {
	m.messagesTotal.WithLabelValues(kind).Inc()
}

// LoginCodeIssued counts a login code delivered by "email" or "phone".
func (m *Metrics) LoginCodeIssued(channel string) {
	m.loginCodesSent.WithLabelValues(channel).Inc()
}

func (m *Metrics) ViewerJoined() {
	m.liveViewers.Inc()
}

func (m *Metrics) ViewerLeft() {
	m.liveViewers.Dec()
}

// routePattern keeps label cardinality bounded: ids never appear in the label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack lets websocket upgrades pass through the metrics middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: underlying ResponseWriter does not implement http.Hijacker")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
