// Package routes builds the fiber application and its routing table.
package routes

import (
	"time"

	"apix/internal/handlers"
	"apix/internal/middleware"
	"apix/internal/services/transfer"
	"apix/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Version = "1.0.0"

// Options carries everything the app needs.
type Options struct {
	TransferService transfer.Service
	Store           handlers.Pinger
	StorageDriver   string

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	AccessLog       bool
}

// NewApp creates the fiber app with its middleware and routes.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Transfer Validation API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD",
	}))
	if opts.Registerer != nil {
		app.Use(middleware.Metrics(opts.Registerer))
	}
	app.Use(middleware.Tracing())

	SetupRoutes(app, opts)
	return app
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, opts Options) {
	transferHandler := handlers.NewTransferHandler(opts.TransferService, validation.New())
	healthHandler := handlers.NewHealthHandler(opts.StorageDriver, opts.Store, Version)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Transfer Validation API",
			"version": Version,
		})
	})
	app.Get("/health", healthHandler.HealthCheck)
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")

	validate := []fiber.Handler{}
	if opts.RateLimitMax > 0 {
		validate = append(validate, limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: opts.RateLimitWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"detail": "Too many requests. Please try again later.",
				})
			},
		}))
	}
	validate = append(validate, transferHandler.ValidateTransfer)

	v1.Post("/transfer/validate", validate...)
}
