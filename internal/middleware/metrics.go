package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation name. Incremented by
// the cache package's client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pinboard_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// NotificationWriteFailures counts notification inserts that were dropped.
// These are non-fatal to the triggering request, so the counter is the only
// place they surface besides the log.
var NotificationWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pinboard_notification_write_failures_total",
	Help: "Total number of failed notification writes by event type",
}, []string{"type"})

// StreamConnections is the gauge of currently open notification stream connections.
var StreamConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "pinboard_notification_stream_connections",
	Help: "Number of open notification SSE connections",
})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware adapts the Prometheus middleware into a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
