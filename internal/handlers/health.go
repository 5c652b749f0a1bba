package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is implemented by dependencies that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of the document store.
type HealthHandler struct {
	storageDriver string
	store         Pinger
	version       string
}

func NewHealthHandler(storageDriver string, store Pinger, version string) *HealthHandler {
	return &HealthHandler{storageDriver: storageDriver, store: store, version: version}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	overall, storage := "ok", "ok"
	status := fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		overall, storage = "degraded", err.Error()
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  overall,
		"version": h.version,
		"services": fiber.Map{
			"storage": fiber.Map{
				"driver": h.storageDriver,
				"status": storage,
			},
		},
	})
}
