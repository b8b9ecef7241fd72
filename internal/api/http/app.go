package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
	"github.com/i474232898/cityinfo-aggregation/internal/metrics"
)

const serviceName = "cityinfo-aggregation"

// StatusReporter exposes the latest upstream probe result.
type StatusReporter interface {
	Status() cityinfo.UpstreamStatus
}

// Options tunes the Fiber app.
type Options struct {
	CORSOrigins  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Upstream is optional; /health omits probe details without it.
	Upstream StatusReporter
}

// NewApp builds the Fiber app with middleware, health, metrics and API routes.
func NewApp(service *cityinfo.Service, opts Options) *fiber.App {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          ErrorHandler,
	})

	// Order matters: recover sits innermost so a panic becomes an error the
	// metrics middleware renders before the request is logged.
	app.Use(requestid.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
	}))
	app.Use(metrics.Middleware())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": serviceName,
		}
		if opts.Upstream != nil {
			body["upstream"] = opts.Upstream.Status()
		}
		return c.JSON(body)
	})
	app.Get("/metrics", metrics.Handler())

	RegisterRoutes(app, service)
	return app
}

// ErrorHandler renders errors as {"error": message}. Internal details are
// logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Stack().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(code).JSON(errorResponse{Error: message})
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
