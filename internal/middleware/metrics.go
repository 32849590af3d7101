package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playreel_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// RateLimitRejections counts throttled requests by action.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playreel_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the per-user rate limiter",
	}, []string{"action"})

	// StreakEnqueueFailures counts streak side-effect jobs lost, either
	// dropped at enqueue (queue_full) or after retries (exhausted).
	StreakEnqueueFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playreel_streak_job_failures_total",
		Help: "Total number of streak increment jobs lost, by reason",
	}, []string{"reason"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics handler for the app.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
