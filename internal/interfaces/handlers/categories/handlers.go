package categories

import (
	catsvc "souqah-backend/internal/application/categories"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *catsvc.Service
}

// List GET /api/v1/categories — all categories with subcategories, ordered
// by sort_order.
func (h *Handlers) List(c *fiber.Ctx) error {
	cats, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Categories fetched", cats, nil)
}

// Get GET /api/v1/categories/:slug
func (h *Handlers) Get(c *fiber.Ctx) error {
	cat, err := h.Service.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Category fetched", cat, nil)
}
