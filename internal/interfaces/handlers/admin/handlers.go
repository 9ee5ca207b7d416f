package admin

import (
	modsvc "souqah-backend/internal/application/moderation"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers serves the moderation surface. Every route behind it is gated by
// middleware.RequireAdmin.
type Handlers struct {
	Moderation *modsvc.Service
}

type actionRequest struct {
	Action string `json:"action"`
}

// PendingAds GET /api/v1/admin/ads/pending — the review queue, oldest first.
func (h *Handlers) PendingAds(c *fiber.Ctx) error {
	ads, err := h.Moderation.PendingAds(c.Context())
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Pending ads fetched", ads, nil)
}

// TransitionAd PATCH /api/v1/admin/ads/:id
func (h *Handlers) TransitionAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	action, err := modsvc.ParseAdAction(req.Action)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	ad, err := h.Moderation.TransitionAd(c.Context(), adID, action)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ad updated", ad, nil)
}

// TransitionUser PATCH /api/v1/admin/users/:id
func (h *Handlers) TransitionUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	action, err := modsvc.ParseUserAction(req.Action)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	user, err := h.Moderation.TransitionUser(c.Context(), userID, action)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "User updated", user.Public(), nil)
}

// ListReports GET /api/v1/admin/reports?status=pending
func (h *Handlers) ListReports(c *fiber.Ctx) error {
	reports, err := h.Moderation.ListReports(c.Context(), c.Query("status"))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Reports fetched", reports, nil)
}

// ResolveReport PATCH /api/v1/admin/reports/:id
func (h *Handlers) ResolveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid report id", fiber.StatusBadRequest, nil)
	}
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	action, err := modsvc.ParseReportAction(req.Action)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	report, err := h.Moderation.ResolveReport(c.Context(), reportID, action, middleware.ActorID(c))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Report resolved", report, nil)
}

// Stats GET /api/v1/admin/stats
func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.Moderation.DashboardStats(c.Context())
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Stats fetched", stats, nil)
}
