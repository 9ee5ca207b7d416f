package ratings

import (
	ratesvc "souqah-backend/internal/application/ratings"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *ratesvc.Service
}

type rateRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Rate POST /api/v1/users/:id/ratings — one rating per (rater, ratee) pair;
// rating again overwrites the previous score.
func (h *Handlers) Rate(c *fiber.Ctx) error {
	rateeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	var req rateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	rating, err := h.Service.Rate(c.Context(), middleware.ActorID(c), rateeID, req.Score, req.Comment)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.SuccessCreated(c, "Rating recorded", rating, nil)
}

// ListForUser GET /api/v1/users/:id/ratings
func (h *Handlers) ListForUser(c *fiber.Ctx) error {
	rateeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	ratings, err := h.Service.ListForUser(c.Context(), rateeID)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ratings fetched", ratings, nil)
}
