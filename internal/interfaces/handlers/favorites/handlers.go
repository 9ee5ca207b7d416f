package favorites

import (
	favsvc "souqah-backend/internal/application/favorites"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *favsvc.Service
}

// Add POST /api/v1/favorites/:adId — idempotent.
func (h *Handlers) Add(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("adId"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Add(c.Context(), middleware.ActorID(c), adID); err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ad favorited", nil, nil)
}

// Remove DELETE /api/v1/favorites/:adId — idempotent.
func (h *Handlers) Remove(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("adId"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), middleware.ActorID(c), adID); err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Favorite removed", nil, nil)
}

// List GET /api/v1/favorites — the caller's favorited ads that are still
// active.
func (h *Handlers) List(c *fiber.Ctx) error {
	ads, err := h.Service.List(c.Context(), middleware.ActorID(c))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Favorites fetched", ads, nil)
}
