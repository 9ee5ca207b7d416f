package health

import (
	healthsvc "souqah-backend/internal/application/health"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// Live GET /health — liveness probe, no dependency checks.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// JSON GET /health/json — runtime, traffic and dependency detail.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	var pinger healthsvc.DBPinger
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			pinger = sqlDB
		}
	}
	result := healthsvc.Collect(c.Context(), h.Rdb, pinger)
	return response.Success(c, "Health check", result, nil)
}
