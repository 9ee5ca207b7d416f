package ads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"souqah-backend/internal/application/badge"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"
	"souqah-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Service is the ad entity manager: create, edit, soft delete, view counting.
// Counter side effects (owner/category totals) ride the same transaction as
// the entity mutation that causes them.
type Service struct {
	DB    *gorm.DB
	Badge *badge.Badge

	// ModerationRequired makes new ads start pending instead of active.
	ModerationRequired bool
	// AdTTL stamps expires_at on create.
	AdTTL time.Duration
}

// ImageInput is one uploaded image reference.
type ImageInput struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateInput carries the ad submission. Price arrives as text so that the
// service owns the "non-negative parseable number" rule.
type CreateInput struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Price           string
	PriceType       string
	CategorySlug    string
	SubcategorySlug string
	City            string
	District        *string
	Location        *string
	ContactPhone    string
	WhatsApp        *string
	Images          []ImageInput
}

// Create validates and persists a new ad. On success the owner's total/active
// counters and the category (and subcategory) counters are incremented in the
// same transaction; when moderation is on, the pending badge is bumped after
// commit.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Ad, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if strings.TrimSpace(in.City) == "" {
		return nil, ErrCityRequired
	}
	if in.CategorySlug == "" {
		return nil, ErrCategoryRequired
	}
	price, ok := validation.ParsePrice(in.Price)
	if !ok {
		return nil, ErrInvalidPrice
	}
	priceType := in.PriceType
	if priceType == "" {
		priceType = constants.PriceFixed
	}
	if !constants.IsValidPriceType(priceType) {
		return nil, ErrInvalidPriceType
	}

	var owner models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", in.UserID).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	contactPhone := strings.TrimSpace(in.ContactPhone)
	if contactPhone == "" {
		contactPhone = strings.TrimSpace(owner.Phone)
	}
	if contactPhone == "" {
		return nil, ErrPhoneRequired
	}

	var category models.Category
	if err := s.DB.WithContext(ctx).Where("slug = ?", in.CategorySlug).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	var subcategory *models.Subcategory
	if in.SubcategorySlug != "" {
		var sc models.Subcategory
		if err := s.DB.WithContext(ctx).Where("slug = ?", in.SubcategorySlug).First(&sc).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrSubcategoryNotFound
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if sc.CategoryID != category.CategoryID {
			return nil, ErrSubcategoryMismatch
		}
		subcategory = &sc
	}

	status := constants.AdActive
	if s.ModerationRequired {
		status = constants.AdPending
	}
	now := time.Now()
	ad := &models.Ad{
		UserID:       in.UserID,
		Title:        in.Title,
		Slug:         makeSlug(in.Title, now),
		Description:  in.Description,
		Price:        price,
		PriceType:    priceType,
		CategoryID:   category.CategoryID,
		City:         in.City,
		District:     in.District,
		Location:     in.Location,
		ContactPhone: contactPhone,
		WhatsApp:     in.WhatsApp,
		Status:       status,
		PublishedAt:  now,
		ExpiresAt:    now.Add(s.AdTTL),
	}
	if subcategory != nil {
		ad.SubcategoryID = &subcategory.SubcategoryID
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(ad).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	images := normalizeImages(ad.AdID, in.Images)
	if len(images) > 0 {
		if err := tx.Create(&images).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}

	userUpdates := map[string]interface{}{"total_ads": gorm.Expr("total_ads + 1")}
	if status == constants.AdActive {
		userUpdates["active_ads"] = gorm.Expr("active_ads + 1")
	}
	if err := tx.Model(&models.User{}).Where("user_id = ?", in.UserID).Updates(userUpdates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Model(&models.Category{}).Where("category_id = ?", category.CategoryID).
		Update("total_ads", gorm.Expr("total_ads + 1")).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if subcategory != nil {
		if err := tx.Model(&models.Subcategory{}).Where("subcategory_id = ?", subcategory.SubcategoryID).
			Update("total_ads", gorm.Expr("total_ads + 1")).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	if status == constants.AdPending && s.Badge != nil {
		s.Badge.Incr(ctx)
	}
	ad.Images = images
	return ad, nil
}

// UpdatePatch limits edits to the owner-mutable fields. Category is immutable
// post-creation. Status accepts only "sold".
type UpdatePatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Price        *string `json:"price"`
	PriceType    *string `json:"price_type"`
	City         *string `json:"city"`
	District     *string `json:"district"`
	Location     *string `json:"location"`
	ContactPhone *string `json:"contact_phone"`
	WhatsApp     *string `json:"whatsapp"`
	Status       *string `json:"status"`
}

// Update applies an owner edit. Soft-deleted ads are treated as absent.
func (s *Service) Update(ctx context.Context, adID, actorID uuid.UUID, patch UpdatePatch) (*models.Ad, error) {
	ad, err := s.getOwned(ctx, adID, actorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		price, ok := validation.ParsePrice(*patch.Price)
		if !ok {
			return nil, ErrInvalidPrice
		}
		updates["price"] = price
	}
	if patch.PriceType != nil {
		if !constants.IsValidPriceType(*patch.PriceType) {
			return nil, ErrInvalidPriceType
		}
		updates["price_type"] = *patch.PriceType
	}
	if patch.City != nil && strings.TrimSpace(*patch.City) != "" {
		updates["city"] = *patch.City
	}
	if patch.District != nil {
		updates["district"] = *patch.District
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.ContactPhone != nil && strings.TrimSpace(*patch.ContactPhone) != "" {
		updates["contact_phone"] = *patch.ContactPhone
	}
	if patch.WhatsApp != nil {
		updates["whatsapp"] = *patch.WhatsApp
	}

	markSold := false
	if patch.Status != nil {
		if *patch.Status != constants.AdSold {
			return nil, ErrStatusNotPatchable
		}
		if ad.Status != constants.AdActive {
			return nil, ErrNotSellable
		}
		markSold = true
	}
	if len(updates) == 0 && !markSold {
		return nil, ErrNoChanges
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if markSold {
		updates["status"] = constants.AdSold
		updates["sold_at"] = time.Now()
		if err := tx.Model(&models.User{}).Where("user_id = ?", ad.UserID).
			Update("active_ads", gorm.Expr("active_ads - 1")).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Model(ad).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	s.DB.WithContext(ctx).Preload("Images").Where("ad_id = ?", adID).First(ad)
	return ad, nil
}

// MarkSold is the shortcut for Update with status=sold.
func (s *Service) MarkSold(ctx context.Context, adID, actorID uuid.UUID) (*models.Ad, error) {
	sold := constants.AdSold
	return s.Update(ctx, adID, actorID, UpdatePatch{Status: &sold})
}

// Delete soft-deletes an ad. Idempotent: deleting an already-deleted ad is a
// no-op and never double-decrements counters. Admin callers bypass the
// ownership check.
func (s *Service) Delete(ctx context.Context, adID, actorID uuid.UUID, admin bool) error {
	var ad models.Ad
	if err := s.DB.WithContext(ctx).Where("ad_id = ?", adID).First(&ad).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrAdNotFound
		}
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if !admin && ad.UserID != actorID {
		return ErrNotAdOwner
	}
	if ad.Status == constants.AdDeleted {
		return nil
	}
	priorStatus := ad.Status

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&ad).Update("status", constants.AdDeleted).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if priorStatus == constants.AdActive {
		if err := tx.Model(&models.User{}).Where("user_id = ?", ad.UserID).
			Update("active_ads", gorm.Expr("active_ads - 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	// Category counters track all non-deleted ads, so they drop on every
	// delete regardless of the prior status.
	if err := tx.Model(&models.Category{}).Where("category_id = ?", ad.CategoryID).
		Update("total_ads", gorm.Expr("total_ads - 1")).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if ad.SubcategoryID != nil {
		if err := tx.Model(&models.Subcategory{}).Where("subcategory_id = ?", *ad.SubcategoryID).
			Update("total_ads", gorm.Expr("total_ads - 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	if priorStatus == constants.AdPending && s.Badge != nil {
		s.Badge.Decr(ctx)
	}
	return nil
}

// RecordView bumps the view counter with an atomic in-place increment. No
// per-viewer deduplication: every fetch counts.
func (s *Service) RecordView(ctx context.Context, adID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.Ad{}).Where("ad_id = ?", adID).
		Update("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, res.Error)
	}
	return nil
}

// AdDetail is the detail-page shape: the ad plus its owner summary.
type AdDetail struct {
	models.Ad
	Owner models.PublicUser `json:"owner"`
}

// Get returns the ad with images and owner summary. Deleted ads are absent.
func (s *Service) Get(ctx context.Context, adID uuid.UUID) (*AdDetail, error) {
	var ad models.Ad
	err := s.DB.WithContext(ctx).Preload("Images").
		Where("ad_id = ? AND status <> ?", adID, constants.AdDeleted).
		First(&ad).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	var owner models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", ad.UserID).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &AdDetail{Ad: ad, Owner: owner.Public()}, nil
}

// ListByOwner returns a user's own ads, newest first, hiding only deleted ones.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Ad, error) {
	var out []models.Ad
	err := s.DB.WithContext(ctx).Preload("Images").
		Where("user_id = ? AND status <> ?", ownerID, constants.AdDeleted).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}

func (s *Service) getOwned(ctx context.Context, adID, actorID uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	err := s.DB.WithContext(ctx).
		Where("ad_id = ? AND status <> ?", adID, constants.AdDeleted).
		First(&ad).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if ad.UserID != actorID {
		return nil, ErrNotAdOwner
	}
	return &ad, nil
}

// makeSlug derives a URL slug from the title plus a timestamp suffix. The
// suffix is not re-checked against existing slugs; a same-second collision on
// identical titles is accepted.
func makeSlug(title string, now time.Time) string {
	base := slug.Make(title)
	if base == "" {
		base = "ad"
	}
	return fmt.Sprintf("%s-%d", base, now.Unix())
}

// normalizeImages enforces the image invariants: at most one primary (the
// first flagged one wins, defaulting to the first image) and a dense 0-based
// display order.
func normalizeImages(adID uuid.UUID, in []ImageInput) []models.AdImage {
	out := make([]models.AdImage, 0, len(in))
	primaryAt := -1
	for _, img := range in {
		if img.URL == "" {
			continue
		}
		if img.IsPrimary && primaryAt == -1 {
			primaryAt = len(out)
		}
		out = append(out, models.AdImage{AdID: adID, URL: img.URL})
	}
	if len(out) == 0 {
		return out
	}
	if primaryAt == -1 {
		primaryAt = 0
	}
	for i := range out {
		out[i].DisplayOrder = i
		out[i].IsPrimary = i == primaryAt
	}
	return out
}
