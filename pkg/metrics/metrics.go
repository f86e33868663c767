// Package metrics содержит prometheus-коллекторы сервиса:
// HTTP запросы, запросы к БД, connection pool и бизнес-события бронирования.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
// Методы безопасны при nil-ресивере: когда метрики выключены,
// вызывающий код передает nil и события просто не учитываются.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      *prometheus.GaugeVec
	dbPoolInUse     *prometheus.GaugeVec
	dbPoolIdle      *prometheus.GaugeVec

	bookingsCreatedTotal   *prometheus.CounterVec
	bookingsCancelledTotal *prometheus.CounterVec
	bookingConflictsTotal  *prometheus.CounterVec
	roomSearchesTotal      *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Count of HTTP requests by method, path and status code.",
			},
			[]string{"service", "method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		dbQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_queries_total",
				Help: "Count of database queries by operation and status.",
			},
			[]string{"service", "operation", "status"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "operation"},
		),
		dbPoolOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_open_connections",
				Help: "Number of open connections in the pool.",
			},
			[]string{"service"},
		),
		dbPoolInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_in_use_connections",
				Help: "Number of connections currently in use.",
			},
			[]string{"service"},
		),
		dbPoolIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_idle_connections",
				Help: "Number of idle connections in the pool.",
			},
			[]string{"service"},
		),
		bookingsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_created_total",
				Help: "Count of bookings created.",
			},
			[]string{"service"},
		),
		bookingsCancelledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_cancelled_total",
				Help: "Count of bookings cancelled.",
			},
			[]string{"service"},
		),
		bookingConflictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_conflicts_total",
				Help: "Count of booking attempts rejected due to interval conflicts.",
			},
			[]string{"service"},
		),
		roomSearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "room_searches_total",
				Help: "Count of room availability searches.",
			},
			[]string{"service"},
		),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbPoolOpen,
		m.dbPoolInUse,
		m.dbPoolIdle,
		m.bookingsCreatedTotal,
		m.bookingsCancelledTotal,
		m.bookingConflictsTotal,
		m.roomSearchesTotal,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(service, method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(seconds)
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.dbQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(seconds)
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(service string, open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbPoolOpen.WithLabelValues(service).Set(float64(open))
	m.dbPoolInUse.WithLabelValues(service).Set(float64(inUse))
	m.dbPoolIdle.WithLabelValues(service).Set(float64(idle))
}

// IncBookingCreated учитывает успешно созданное бронирование
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncBookingCancelled учитывает отмененное бронирование
func (m *Metrics) IncBookingCancelled() {
	if m == nil {
		return
	}
	m.bookingsCancelledTotal.WithLabelValues(m.serviceName).Inc()
}

// IncBookingConflict учитывает отказ из-за пересечения интервалов
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflictsTotal.WithLabelValues(m.serviceName).Inc()
}

// IncRoomSearch учитывает выполненный поиск переговорных
func (m *Metrics) IncRoomSearch() {
	if m == nil {
		return
	}
	m.roomSearchesTotal.WithLabelValues(m.serviceName).Inc()
}
