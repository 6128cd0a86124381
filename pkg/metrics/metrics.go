package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors of the scheduling service.
// All methods are nil-safe so components can run with metrics disabled.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	BookingAttempts       *prometheus.CounterVec
	AvailabilityAnomalies *prometheus.CounterVec
	WaitlistPromotions    *prometheus.CounterVec
	WaitlistExpired       prometheus.Counter
	TemplateCache         *prometheus.CounterVec
}

// New registers the collectors in the default prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer registers the collectors in reg
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		BookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),
		AvailabilityAnomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_overbooked_slots_total",
			Help:        "Slots observed with more active bookings than capacity",
			ConstLabels: constLabels,
		}, []string{"service_id"}),
		WaitlistPromotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "waitlist_promotions_total",
			Help:        "Waitlist promotion attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),
		WaitlistExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_expired_total",
			Help:        "Notified waitlist entries expired without booking",
			ConstLabels: constLabels,
		}),
		TemplateCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_template_cache_total",
			Help:        "Schedule template cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.BookingAttempts,
		m.AvailabilityAnomalies,
		m.WaitlistPromotions,
		m.WaitlistExpired,
		m.TemplateCache,
	)

	return m
}

// ObserveHTTP records a finished HTTP request
func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveQuery records a database call duration
func (m *Metrics) ObserveQuery(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetPoolStats updates connection pool gauges
func (m *Metrics) SetPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUseConnections.Set(float64(inUse))
	m.DBIdleConnections.Set(float64(idle))
}

// IncBookingAttempt counts a booking attempt outcome ("created", "conflict" or a rejection reason)
func (m *Metrics) IncBookingAttempt(result string) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(result).Inc()
}

// IncAvailabilityAnomaly counts a slot with booked > capacity
func (m *Metrics) IncAvailabilityAnomaly(serviceID string) {
	if m == nil {
		return
	}
	m.AvailabilityAnomalies.WithLabelValues(serviceID).Inc()
}

// IncWaitlistPromotion counts a promotion outcome ("notified", "empty", "notify_failed")
func (m *Metrics) IncWaitlistPromotion(result string) {
	if m == nil {
		return
	}
	m.WaitlistPromotions.WithLabelValues(result).Inc()
}

// AddWaitlistExpired counts expired waitlist entries
func (m *Metrics) AddWaitlistExpired(n int) {
	if m == nil {
		return
	}
	m.WaitlistExpired.Add(float64(n))
}

// IncTemplateCache counts a cache lookup ("hit", "miss", "error")
func (m *Metrics) IncTemplateCache(result string) {
	if m == nil {
		return
	}
	m.TemplateCache.WithLabelValues(result).Inc()
}
