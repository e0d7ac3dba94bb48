package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vault",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	investmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "investments",
			Name:      "created_total",
			Help:      "Accepted investments by membership tier.",
		},
		[]string{"tier"},
	)

	investmentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "investments",
			Name:      "rejected_total",
			Help:      "Refused investments by rejection reason.",
		},
		[]string{"reason"},
	)

	upstreamFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "upstream",
			Name:      "fallbacks_total",
			Help:      "Third-party calls answered from static fallback data.",
		},
		[]string{"provider"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		investmentsCreated,
		investmentsRejected,
		upstreamFallbacks,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			return
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func InvestmentCreated(tier string) {
	investmentsCreated.WithLabelValues(tier).Inc()
}

func InvestmentRejected(reason string) {
	investmentsRejected.WithLabelValues(reason).Inc()
}

func UpstreamFallback(provider string) {
	upstreamFallbacks.WithLabelValues(provider).Inc()
}
