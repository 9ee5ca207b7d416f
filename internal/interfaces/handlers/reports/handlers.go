package reports

import (
	repsvc "souqah-backend/internal/application/reports"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *repsvc.Service
}

type createRequest struct {
	AdID   string `json:"ad_id"`
	Reason string `json:"reason"`
}

// Create POST /api/v1/reports
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	adID, err := uuid.Parse(req.AdID)
	if err != nil {
		return response.Error(c, "Invalid ad_id", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.Create(c.Context(), middleware.ActorID(c), adID, req.Reason)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.SuccessCreated(c, "Report submitted", report, nil)
}
