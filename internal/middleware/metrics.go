package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkreel_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

var (
	promMu        sync.Mutex
	promInstances = map[string]*fiberprometheus.FiberPrometheus{}
)

// InitMetrics creates the Prometheus middleware for the given service name.
// Repeated calls for the same service reuse one instance, since the default
// registry rejects duplicate collectors.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promMu.Lock()
	defer promMu.Unlock()
	if prom, ok := promInstances[serviceName]; ok {
		return prom
	}
	prom := fiberprometheus.New(serviceName)
	promInstances[serviceName] = prom
	return prom
}

// MetricsMiddleware returns the request-instrumentation handler for prom.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
