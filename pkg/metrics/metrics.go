package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="reviews"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (review-request flow)
// =============================================================================

// ReviewRequestsSent - созданные review requests по каналу и исходу
var ReviewRequestsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_requests_sent_total",
		Help: "Total number of review requests by channel and outcome",
	},
	[]string{"channel", "status"}, // status: sent, failed
)

// DispatchDuration - время одной попытки отправки через провайдера
var DispatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dispatch_duration_seconds",
		Help:    "Duration of a single provider dispatch attempt",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"channel", "mode"}, // mode: live, simulated
)

// RatingsSubmitted - принятые оценки по источнику
var RatingsSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "Total number of accepted rating submissions",
	},
	[]string{"source"}, // source: request, client
)

// RatingsValue - распределение значений оценок
var RatingsValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "ratings_value",
		Help:    "Distribution of submitted rating values",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// PublicClicksTracked - клики по внешним платформам
var PublicClicksTracked = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "public_clicks_tracked_total",
		Help: "Total number of tracked public platform clicks",
	},
	[]string{"platform"},
)

// RedirectHits - попадания по трекинговым ссылкам
var RedirectHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redirect_hits_total",
		Help: "Total number of tracked redirect hits",
	},
	[]string{"resolved"}, // resolved: true, false
)

// PrivateFeedbackSaved - сохранённые private feedback (создание и перезапись)
var PrivateFeedbackSaved = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "private_feedback_saved_total",
		Help: "Total number of private feedback upserts",
	},
)
