package categories

import (
	"context"
	"fmt"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = fmt.Errorf("%w: category", apperrors.ErrNotFound)

// Service reads the taxonomy. Counter maintenance happens in the ads and
// moderation services, not here.
type Service struct {
	DB *gorm.DB
}

// List returns all categories with nested subcategories, in sort order.
func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.DB.WithContext(ctx).Preload("Subcategories").
		Order("sort_order ASC, name_en ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}

// GetBySlug returns one category with subcategories.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.DB.WithContext(ctx).Preload("Subcategories").Where("slug = ?", slug).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &c, nil
}

// Seed inserts the given categories if the table is empty (fixtures, dev).
func (s *Service) Seed(ctx context.Context, cats []models.Category) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if count > 0 {
		return nil
	}
	if err := s.DB.WithContext(ctx).Create(&cats).Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
