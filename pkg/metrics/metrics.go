package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics процесс-wide счетчики платформы.
// Все инкременты атомарные (prometheus), снаружи отдаются
// в текстовом формате через Handler().
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Бронирования
	bookingsCreatedTotal     prometheus.Counter
	bookingStatusTotal       *prometheus.GaugeVec
	bookingTransitionsTotal  *prometheus.CounterVec
	reservationSweeperTotal  *prometheus.CounterVec
	reservationsSweptTotal   prometheus.Counter

	// Медиа-пайплайн
	mediaIngestTotal           prometheus.Counter
	mediaTranscodeStartedTotal prometheus.Counter
	mediaTranscodeSuccessTotal prometheus.Counter
	mediaTranscodeFailureTotal prometheus.Counter
	mediaVirusScanFailureTotal prometheus.Counter

	// Уведомления (per-channel)
	notificationsScheduledTotal *prometheus.CounterVec
	notificationsSentTotal      *prometheus.CounterVec
	notificationsFailedTotal    *prometheus.CounterVec
	notificationsSkippedTotal   *prometheus.CounterVec
}

// New создает и регистрирует все коллекторы.
// serviceName попадает во все метрики как константный label.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_http_requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "elderly_http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		bookingsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_bookings_created_total",
			Help:        "Total number of booking requests created.",
			ConstLabels: constLabels,
		}),

		bookingStatusTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "elderly_booking_status_total",
			Help:        "Bookings currently recorded per status.",
			ConstLabels: constLabels,
		}, []string{"status"}),

		bookingTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_booking_status_transition_total",
			Help:        "Total booking status transitions.",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		reservationSweeperTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_reservation_sweeper_total",
			Help:        "Reservation sweeper job executions.",
			ConstLabels: constLabels,
		}, []string{"result"}),

		reservationsSweptTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_reservations_swept_total",
			Help:        "Expired slot reservations reclaimed by the sweeper.",
			ConstLabels: constLabels,
		}),

		mediaIngestTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_media_ingest_total",
			Help:        "Total number of media items queued for ingestion.",
			ConstLabels: constLabels,
		}),

		mediaTranscodeStartedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_media_transcode_started_total",
			Help:        "Media transcode jobs started.",
			ConstLabels: constLabels,
		}),

		mediaTranscodeSuccessTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_media_transcode_success_total",
			Help:        "Media transcode jobs completed successfully.",
			ConstLabels: constLabels,
		}),

		mediaTranscodeFailureTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_media_transcode_failure_total",
			Help:        "Media transcode jobs that failed.",
			ConstLabels: constLabels,
		}),

		mediaVirusScanFailureTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "elderly_media_virus_scan_failure_total",
			Help:        "Media items that failed virus scanning.",
			ConstLabels: constLabels,
		}),

		notificationsScheduledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_notifications_scheduled_total",
			Help:        "Notifications scheduled for delivery.",
			ConstLabels: constLabels,
		}, []string{"channel"}),

		notificationsSentTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_notifications_sent_total",
			Help:        "Notifications successfully delivered.",
			ConstLabels: constLabels,
		}, []string{"channel"}),

		notificationsFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_notifications_failed_total",
			Help:        "Notifications that failed delivery.",
			ConstLabels: constLabels,
		}, []string{"channel"}),

		notificationsSkippedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "elderly_notifications_skipped_total",
			Help:        "Notifications skipped due to preferences or quiet hours.",
			ConstLabels: constLabels,
		}, []string{"channel"}),
	}
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest записывает метрики обработанного HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordBookingCreated учитывает созданное бронирование
func (m *Metrics) RecordBookingCreated(status string) {
	m.bookingsCreatedTotal.Inc()
	m.bookingStatusTotal.WithLabelValues(status).Inc()
}

// RecordStatusChange учитывает переход статуса бронирования
func (m *Metrics) RecordStatusChange(from, to string) {
	m.bookingTransitionsTotal.WithLabelValues(from, to).Inc()
	m.bookingStatusTotal.WithLabelValues(from).Dec()
	m.bookingStatusTotal.WithLabelValues(to).Inc()
}

// RecordSweeperRun учитывает результат прогона sweeper'а ("success"/"failure")
func (m *Metrics) RecordSweeperRun(result string) {
	m.reservationSweeperTotal.WithLabelValues(result).Inc()
}

// RecordReservationSwept учитывает реклейм одной истекшей резервации
func (m *Metrics) RecordReservationSwept() {
	m.reservationsSweptTotal.Inc()
}

// RecordMediaIngestQueued учитывает постановку медиа в очередь обработки
func (m *Metrics) RecordMediaIngestQueued() {
	m.mediaIngestTotal.Inc()
}

// RecordTranscodeStart учитывает старт транскодирования
func (m *Metrics) RecordTranscodeStart() {
	m.mediaTranscodeStartedTotal.Inc()
}

// RecordTranscodeSuccess учитывает успешное транскодирование
func (m *Metrics) RecordTranscodeSuccess() {
	m.mediaTranscodeSuccessTotal.Inc()
}

// RecordTranscodeFailure учитывает ошибку транскодирования
func (m *Metrics) RecordTranscodeFailure() {
	m.mediaTranscodeFailureTotal.Inc()
}

// RecordVirusScanFailure учитывает провал антивирусной проверки
func (m *Metrics) RecordVirusScanFailure() {
	m.mediaVirusScanFailureTotal.Inc()
}

// RecordNotificationScheduled учитывает запланированное уведомление
func (m *Metrics) RecordNotificationScheduled(channel string) {
	m.notificationsScheduledTotal.WithLabelValues(channel).Inc()
}

// RecordNotificationSent учитывает доставленное уведомление
func (m *Metrics) RecordNotificationSent(channel string) {
	m.notificationsSentTotal.WithLabelValues(channel).Inc()
}

// RecordNotificationFailed учитывает ошибку доставки уведомления
func (m *Metrics) RecordNotificationFailed(channel string) {
	m.notificationsFailedTotal.WithLabelValues(channel).Inc()
}

// RecordNotificationSkipped учитывает пропущенное уведомление
func (m *Metrics) RecordNotificationSkipped(channel string) {
	m.notificationsSkippedTotal.WithLabelValues(channel).Inc()
}
