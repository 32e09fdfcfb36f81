package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the VowSelect backend.
var Metrics = struct {
	VotesTotal           *prometheus.CounterVec
	UndosTotal           prometheus.Counter
	ImportJobsTotal      *prometheus.CounterVec
	ImportItemsProcessed prometheus.Counter
	ImportItemsFailed    prometheus.Counter
	RankingDuration      prometheus.Histogram
	RequestDuration      *prometheus.HistogramVec
	RequestsInFlight     prometheus.Gauge
	DBPoolActive         prometheus.GaugeFunc
	DBPoolIdle           prometheus.GaugeFunc
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
}{}

// Init registers all Prometheus metrics. Call once at startup.
func Init(pool *pgxpool.Pool) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vowselect_votes_total",
			Help: "Total votes submitted, by score.",
		},
		[]string{"score"},
	)

	Metrics.UndosTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vowselect_vote_undos_total",
			Help: "Total vote undos performed.",
		},
	)

	Metrics.ImportJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vowselect_import_jobs_total",
			Help: "Import jobs reaching a terminal state, by status.",
		},
		[]string{"status"},
	)

	Metrics.ImportItemsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vowselect_import_items_processed_total",
			Help: "Photo references successfully cataloged by import runs.",
		},
	)

	Metrics.ImportItemsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vowselect_import_items_failed_total",
			Help: "Items skipped by import runs due to per-item failures.",
		},
	)

	Metrics.RankingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vowselect_ranking_computation_duration_seconds",
			Help:    "Duration of full ranking recomputations.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vowselect_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vowselect_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vowselect_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vowselect_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "vowselect_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "vowselect_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.UndosTotal,
		Metrics.ImportJobsTotal,
		Metrics.ImportItemsProcessed,
		Metrics.ImportItemsFailed,
		Metrics.RankingDuration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)
}

// Middleware records request duration and in-flight count for Prometheus.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(); Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case len(path) > 17 && path[:17] == "/api/photos/room/":
		return "/api/photos/room/:roomId"
	case len(path) > 19 && path[:19] == "/api/photos/import/":
		return "/api/photos/import/:jobId"
	case len(path) > 12 && path[:12] == "/api/photos/":
		return "/api/photos/:photoId"
	case len(path) > 11 && path[:11] == "/api/rooms/":
		return "/api/rooms/:roomId"
	case len(path) > 11 && path[:11] == "/api/users/":
		return "/api/users/:userId"
	case len(path) > 11 && path[:11] == "/api/votes/":
		return "/api/votes/:scope"
	case len(path) > 14 && path[:14] == "/api/rankings/":
		return "/api/rankings/:roomId"
	case len(path) > 12 && path[:12] == "/api/export/":
		return "/api/export/:jobId"
	default:
		return path
	}
}

// Handler serves the Prometheus /metrics endpoint via Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
