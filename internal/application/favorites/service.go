package favorites

import (
	"context"
	"fmt"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAdNotFound = fmt.Errorf("%w: ad", apperrors.ErrNotFound)

// Service manages the (user, ad) favorite pairs. The composite unique index
// is the concurrency guard; adds and removes adjust the ad's favorite counter
// only when a row actually changed.
type Service struct {
	DB *gorm.DB
}

// Add favorites an ad for a user. Re-adding is a no-op that does not inflate
// the counter.
func (s *Service) Add(ctx context.Context, userID, adID uuid.UUID) error {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Ad{}).
		Where("ad_id = ? AND status <> ?", adID, constants.AdDeleted).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if count == 0 {
		return ErrAdNotFound
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{UserID: userID, AdID: adID})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, res.Error)
	}
	if res.RowsAffected > 0 {
		if err := tx.Model(&models.Ad{}).Where("ad_id = ?", adID).
			Update("favorite_count", gorm.Expr("favorite_count + 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// Remove unfavorites an ad. Removing a non-favorite is a no-op.
func (s *Service) Remove(ctx context.Context, userID, adID uuid.UUID) error {
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	res := tx.Where("user_id = ? AND ad_id = ?", userID, adID).Delete(&models.Favorite{})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, res.Error)
	}
	if res.RowsAffected > 0 {
		if err := tx.Model(&models.Ad{}).Where("ad_id = ?", adID).
			Update("favorite_count", gorm.Expr("favorite_count - 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// List returns the user's favorited ads that are still active, newest
// favorite first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Ad, error) {
	var out []models.Ad
	err := s.DB.WithContext(ctx).Preload("Images").
		Joins("JOIN favorites ON favorites.ad_id = ads.ad_id").
		Where("favorites.user_id = ? AND ads.status = ?", userID, constants.AdActive).
		Order("favorites.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}
