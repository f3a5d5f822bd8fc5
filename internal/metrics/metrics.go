// Package metrics exposes the process's Prometheus instrumentation: booking
// outcome counters plus HTTP request counts and latencies, served from a
// dedicated registry so the scrape endpoint stays free of default collectors
// registered by other libraries.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the registry and the instruments the server records into.
type Metrics struct {
	registry *prometheus.Registry

	sessionsBooked   prometheus.Counter
	bookingConflicts prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New builds a registry with the process collectors and the studio's own
// instruments registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		sessionsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sounddesk_sessions_booked_total",
			Help: "Sessions successfully booked.",
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sounddesk_booking_conflicts_total",
			Help: "Booking attempts rejected because the room slot was taken.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sounddesk_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sounddesk_http_request_duration_seconds",
			Help:    "HTTP request latency, by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	registry.MustRegister(m.sessionsBooked, m.bookingConflicts, m.httpRequests, m.httpDuration)
	return m
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SessionBooked counts a successful booking.
func (m *Metrics) SessionBooked() {
	m.sessionsBooked.Inc()
}

// BookingConflict counts a booking rejected on a room conflict.
func (m *Metrics) BookingConflict() {
	m.bookingConflicts.Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}
