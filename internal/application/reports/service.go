package reports

import (
	"context"
	"fmt"
	"strings"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReasonRequired = fmt.Errorf("%w: a reason is required", apperrors.ErrValidation)
	ErrAdNotFound     = fmt.Errorf("%w: ad", apperrors.ErrNotFound)
	ErrOwnAd          = fmt.Errorf("%w: you cannot report your own ad", apperrors.ErrValidation)
)

// Service files complaints against ads. Resolution lives in the moderation
// service; this side only creates pending reports.
type Service struct {
	DB *gorm.DB
}

// Create files a report against an ad. The seller reference is denormalized
// from the ad so moderation can cascade without another lookup.
func (s *Service) Create(ctx context.Context, reporterID, adID uuid.UUID, reason string) (*models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
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
	if ad.UserID == reporterID {
		return nil, ErrOwnAd
	}

	report := &models.Report{
		AdID:       adID,
		ReporterID: reporterID,
		SellerID:   ad.UserID,
		Reason:     reason,
		Status:     constants.ReportPending,
	}
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return report, nil
}
