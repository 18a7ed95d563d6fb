package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds all Prometheus metrics of the service.
type MetricsRegistry struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business
	TicketsBookedTotal    prometheus.Counter
	LeasePeriodsInvoiced  prometheus.Counter
	LeasePaymentsReceived prometheus.Counter
	RentRemindersSent     prometheus.Counter
	JobDuration           *prometheus.HistogramVec
}

func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &MetricsRegistry{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplanemode_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airplanemode_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airplanemode_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplanemode_cache_hits_total",
				Help: "Total cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplanemode_cache_misses_total",
				Help: "Total cache misses by cache name",
			},
			[]string{"cache"},
		),

		TicketsBookedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airplanemode_tickets_booked_total",
				Help: "Total airplane tickets booked",
			},
		),
		LeasePeriodsInvoiced: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airplanemode_lease_periods_invoiced_total",
				Help: "Total lease periods generated with an invoice",
			},
		),
		LeasePaymentsReceived: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airplanemode_lease_payments_received_cents_total",
				Help: "Sum of lease payments received, in cents",
			},
		),
		RentRemindersSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airplanemode_rent_reminders_total",
				Help: "Total rent reminders published",
			},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airplanemode_job_duration_seconds",
				Help:    "Scheduled job execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"job_name"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
