package ads

import (
	adsvc "souqah-backend/internal/application/ads"
	listsvc "souqah-backend/internal/application/listings"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers serves the public ad surface: the listing query, ad detail, and
// the owner's create/edit/delete operations.
type Handlers struct {
	Ads      *adsvc.Service
	Listings *listsvc.Service
}

// List GET /api/v1/ads — filtered, sorted, paginated active ads.
func (h *Handlers) List(c *fiber.Ctx) error {
	params := listsvc.Params{
		CategorySlug:    c.Query("category"),
		SubcategorySlug: c.Query("subcategory"),
		City:            c.Query("city"),
		Search:          c.Query("search"),
		MinPrice:        c.Query("min_price"),
		MaxPrice:        c.Query("max_price"),
		FeaturedOnly:    c.Query("featured") == "true",
		Sort:            c.Query("sort"),
		Page:            c.Query("page"),
		Limit:           c.Query("limit"),
	}
	if raw := c.Query("user_id"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
		}
		params.OwnerID = ownerID
	}

	page, err := h.Listings.List(c.Context(), params)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Paginated(c, "Ads fetched", page.Items, response.Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasMore:    page.HasMore,
	})
}

// Get GET /api/v1/ads/:id — ad detail; every fetch counts a view.
func (h *Handlers) Get(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Ads.Get(c.Context(), adID)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	if err := h.Ads.RecordView(c.Context(), adID); err != nil {
		log.Warn().Err(err).Str("ad_id", adID.String()).Msg("view count increment failed")
	}
	return response.Success(c, "Ad fetched", detail, nil)
}

// CreateRequest is the ad submission body. Price is text so malformed values
// surface as validation errors, not JSON decode failures.
type CreateRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        string             `json:"price"`
	PriceType    string             `json:"price_type"`
	Category     string             `json:"category"`
	Subcategory  string             `json:"subcategory"`
	City         string             `json:"city"`
	District     *string            `json:"district"`
	Location     *string            `json:"location"`
	ContactPhone string             `json:"contact_phone"`
	WhatsApp     *string            `json:"whatsapp"`
	Images       []adsvc.ImageInput `json:"images"`
}

// Create POST /api/v1/ads
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	ad, err := h.Ads.Create(c.Context(), adsvc.CreateInput{
		UserID:          middleware.ActorID(c),
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		PriceType:       req.PriceType,
		CategorySlug:    req.Category,
		SubcategorySlug: req.Subcategory,
		City:            req.City,
		District:        req.District,
		Location:        req.Location,
		ContactPhone:    req.ContactPhone,
		WhatsApp:        req.WhatsApp,
		Images:          req.Images,
	})
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.SuccessCreated(c, "Ad created", ad, nil)
}

// Update PUT /api/v1/ads/:id — owner edit.
func (h *Handlers) Update(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	var patch adsvc.UpdatePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	ad, err := h.Ads.Update(c.Context(), adID, middleware.ActorID(c), patch)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ad updated", ad, nil)
}

// MarkSold POST /api/v1/ads/:id/sold
func (h *Handlers) MarkSold(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	ad, err := h.Ads.MarkSold(c.Context(), adID, middleware.ActorID(c))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ad marked as sold", ad, nil)
}

// Delete DELETE /api/v1/ads/:id — owner soft delete.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	if err := h.Ads.Delete(c.Context(), adID, middleware.ActorID(c), false); err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Ad deleted", nil, nil)
}

// MyAds GET /api/v1/my/ads — the caller's own ads, all visible statuses.
func (h *Handlers) MyAds(c *fiber.Ctx) error {
	out, err := h.Ads.ListByOwner(c.Context(), middleware.ActorID(c))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Your ads fetched", out, nil)
}
