package ratings

import (
	"context"
	"fmt"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSelfRating   = fmt.Errorf("%w: you cannot rate yourself", apperrors.ErrValidation)
	ErrBadScore     = fmt.Errorf("%w: score must be between 1 and 5", apperrors.ErrValidation)
	ErrUserNotFound = fmt.Errorf("%w: user", apperrors.ErrNotFound)
)

// Service handles user-to-user reviews. One rating per (rater, ratee); rating
// again replaces the previous score. The ratee's aggregate mean and count are
// recomputed in the same transaction as the write, so they can never drift
// from the underlying rows.
type Service struct {
	DB *gorm.DB
}

// Rate records or refreshes a review of ratee by rater.
func (s *Service) Rate(ctx context.Context, raterID, rateeID uuid.UUID, score int, comment string) (*models.Rating, error) {
	if raterID == rateeID {
		return nil, ErrSelfRating
	}
	if score < 1 || score > 5 {
		return nil, ErrBadScore
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", rateeID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var rating models.Rating
	err := tx.Where("rater_id = ? AND ratee_id = ?", raterID, rateeID).First(&rating).Error
	switch err {
	case nil:
		if err := tx.Model(&rating).Updates(map[string]interface{}{
			"score":   score,
			"comment": comment,
		}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		rating.Score = score
		rating.Comment = comment
	case gorm.ErrRecordNotFound:
		rating = models.Rating{RaterID: raterID, RateeID: rateeID, Score: score, Comment: comment}
		if err := tx.Create(&rating).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	default:
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	// Recompute the aggregate from the rows rather than adjusting in place.
	var agg struct {
		Mean  float64
		Count int64
	}
	err = tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS mean, COUNT(*) AS count").
		Where("ratee_id = ?", rateeID).
		Scan(&agg).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Model(&models.User{}).Where("user_id = ?", rateeID).Updates(map[string]interface{}{
		"rating":       agg.Mean,
		"rating_count": agg.Count,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &rating, nil
}

// ListForUser returns the reviews received by a user, newest first.
func (s *Service) ListForUser(ctx context.Context, rateeID uuid.UUID) ([]models.Rating, error) {
	var out []models.Rating
	err := s.DB.WithContext(ctx).Where("ratee_id = ?", rateeID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}
