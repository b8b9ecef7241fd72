// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityinfo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cityinfo_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequests counts upstream calls by endpoint (city, weather, probe)
	// and outcome (ok, not_found, error).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityinfo_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	WeatherFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cityinfo_weather_fallbacks_total",
			Help: "Responses served with the placeholder forecast",
		},
	)

	RecipesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cityinfo_recipes_stored",
			Help: "Number of recipes currently held in memory",
		},
	)
)

// Middleware records request count and latency per matched route. Errors
// from the chain are rendered through the app's error handler first so the
// recorded status is the one sent to the client.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		httpRequestsTotal.WithLabelValues(c.Method(), route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}

// Handler serves the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
