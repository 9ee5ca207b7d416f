package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"souqah-backend/internal/application/badge"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service enforces the legal status transitions for ads, users and reports,
// and keeps the derived counters consistent. Legality is always re-validated
// here; client-supplied action strings are never trusted.
type Service struct {
	DB    *gorm.DB
	Badge *badge.Badge
}

// TransitionAd applies an admin action to an ad. Illegal transitions leave the
// ad unchanged. All counter side effects commit atomically with the status
// change; the pending badge is adjusted after commit.
func (s *Service) TransitionAd(ctx context.Context, adID uuid.UUID, action AdAction) (*models.Ad, error) {
	var ad models.Ad
	if err := s.DB.WithContext(ctx).Where("ad_id = ?", adID).First(&ad).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	priorStatus := ad.Status
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := s.applyAdAction(tx, &ad, action); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	s.settleBadge(ctx, priorStatus, ad.Status)
	return &ad, nil
}

// applyAdAction mutates the ad inside tx per the transition table. The caller
// owns commit/rollback and the badge settlement.
func (s *Service) applyAdAction(tx *gorm.DB, ad *models.Ad, action AdAction) error {
	switch action {
	case AdApprove:
		if ad.Status != constants.AdPending {
			return invalidAd(action, ad.Status)
		}
		if err := tx.Model(ad).Update("status", constants.AdActive).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		// Approval moves the ad into active, so the owner's counter follows.
		if err := tx.Model(&models.User{}).Where("user_id = ?", ad.UserID).
			Update("active_ads", gorm.Expr("active_ads + 1")).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		ad.Status = constants.AdActive
		return nil

	case AdReject:
		if ad.Status != constants.AdPending {
			return invalidAd(action, ad.Status)
		}
		if err := tx.Model(ad).Update("status", constants.AdRejected).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		ad.Status = constants.AdRejected
		return nil

	case AdToggleFeatured:
		if ad.Status != constants.AdActive {
			return invalidAd(action, ad.Status)
		}
		if err := tx.Model(ad).Update("featured", !ad.Featured).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		ad.Featured = !ad.Featured
		return nil

	case AdMarkSold:
		if ad.Status != constants.AdActive {
			return invalidAd(action, ad.Status)
		}
		now := time.Now()
		if err := tx.Model(ad).Updates(map[string]interface{}{
			"status":  constants.AdSold,
			"sold_at": now,
		}).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if err := tx.Model(&models.User{}).Where("user_id = ?", ad.UserID).
			Update("active_ads", gorm.Expr("active_ads - 1")).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		ad.Status = constants.AdSold
		ad.SoldAt = &now
		return nil

	case AdDelete:
		if ad.Status == constants.AdDeleted {
			return invalidAd(action, ad.Status)
		}
		return s.deleteAdInTx(tx, ad)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// deleteAdInTx soft-deletes an ad with its counter side effects inside an
// existing transaction (shared by the admin delete action and the report
// cascade).
func (s *Service) deleteAdInTx(tx *gorm.DB, ad *models.Ad) error {
	priorStatus := ad.Status
	if err := tx.Model(ad).Update("status", constants.AdDeleted).Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if priorStatus == constants.AdActive {
		if err := tx.Model(&models.User{}).Where("user_id = ?", ad.UserID).
			Update("active_ads", gorm.Expr("active_ads - 1")).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := tx.Model(&models.Category{}).Where("category_id = ?", ad.CategoryID).
		Update("total_ads", gorm.Expr("total_ads - 1")).Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if ad.SubcategoryID != nil {
		if err := tx.Model(&models.Subcategory{}).Where("subcategory_id = ?", *ad.SubcategoryID).
			Update("total_ads", gorm.Expr("total_ads - 1")).Error; err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	ad.Status = constants.AdDeleted
	return nil
}

// settleBadge adjusts the pending badge after a committed transition.
func (s *Service) settleBadge(ctx context.Context, prior, current string) {
	if s.Badge == nil || prior == current {
		return
	}
	if prior == constants.AdPending {
		s.Badge.Decr(ctx)
	}
	if current == constants.AdPending {
		s.Badge.Incr(ctx)
	}
}

// TransitionUser applies an admin action to a user account.
// Legal moves: active→{suspended,banned}, suspended→{active,banned},
// banned→{active}. Verify flips the independent verified flag and is only
// allowed while the account is active; there is no unverify.
func (s *Service) TransitionUser(ctx context.Context, userID uuid.UUID, action UserAction) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	updates := map[string]interface{}{}
	switch action {
	case UserVerify:
		if user.Status != constants.UserActive {
			return nil, invalidUser(action, user.Status)
		}
		updates["verified"] = true
		user.Verified = true
	case UserSuspend:
		if user.Status != constants.UserActive {
			return nil, invalidUser(action, user.Status)
		}
		updates["status"] = constants.UserSuspended
		user.Status = constants.UserSuspended
	case UserBan:
		if user.Status != constants.UserActive && user.Status != constants.UserSuspended {
			return nil, invalidUser(action, user.Status)
		}
		updates["status"] = constants.UserBanned
		user.Status = constants.UserBanned
	case UserActivate:
		if user.Status != constants.UserSuspended && user.Status != constants.UserBanned {
			return nil, invalidUser(action, user.Status)
		}
		updates["status"] = constants.UserActive
		user.Status = constants.UserActive
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &user, nil
}

// ResolveReport closes a pending report. Cascading effects (deleting the
// reported ad, banning the seller) commit in the same transaction as the
// report's status flip: either both land or neither does.
func (s *Service) ResolveReport(ctx context.Context, reportID uuid.UUID, action ReportAction, actorID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.DB.WithContext(ctx).Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if report.Status != constants.ReportPending {
		return nil, invalidReport(action, report.Status)
	}

	newStatus := constants.ReportResolved
	if action == ReportDismiss {
		newStatus = constants.ReportDismissed
	}

	var cascadedAd *models.Ad
	adPriorStatus := ""

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	switch action {
	case ReportResolveDeleteAd:
		var ad models.Ad
		if err := tx.Where("ad_id = ?", report.AdID).First(&ad).Error; err != nil {
			tx.Rollback()
			if err == gorm.ErrRecordNotFound {
				return nil, ErrAdNotFound
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if ad.Status == constants.AdDeleted {
			tx.Rollback()
			return nil, invalidAd(AdDelete, ad.Status)
		}
		adPriorStatus = ad.Status
		if err := s.deleteAdInTx(tx, &ad); err != nil {
			tx.Rollback()
			return nil, err
		}
		cascadedAd = &ad

	case ReportResolveBan:
		var seller models.User
		if err := tx.Where("user_id = ?", report.SellerID).First(&seller).Error; err != nil {
			tx.Rollback()
			if err == gorm.ErrRecordNotFound {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if seller.Status == constants.UserBanned {
			tx.Rollback()
			return nil, invalidUser(UserBan, seller.Status)
		}
		if err := tx.Model(&seller).Update("status", constants.UserBanned).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}

	case ReportResolve, ReportDismiss:
		// no cascade

	default:
		tx.Rollback()
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	now := time.Now()
	resolution, _ := json.Marshal(map[string]interface{}{
		"action":   string(action),
		"actor_id": actorID.String(),
	})
	if err := tx.Model(&report).Updates(map[string]interface{}{
		"status":      newStatus,
		"resolved_at": now,
		"resolution":  datatypes.JSON(resolution),
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	if cascadedAd != nil {
		s.settleBadge(ctx, adPriorStatus, cascadedAd.Status)
	}
	report.Status = newStatus
	report.ResolvedAt = &now
	report.Resolution = datatypes.JSON(resolution)
	return &report, nil
}

// PendingAds returns the moderation queue, oldest submissions first.
func (s *Service) PendingAds(ctx context.Context) ([]models.Ad, error) {
	var out []models.Ad
	err := s.DB.WithContext(ctx).Preload("Images").
		Where("status = ?", constants.AdPending).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}

// ListReports returns reports, optionally filtered by status, newest first.
func (s *Service) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	q := s.DB.WithContext(ctx).Model(&models.Report{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Report
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return out, nil
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAds       int64 `json:"total_ads"`
	ActiveAds      int64 `json:"active_ads"`
	PendingAds     int64 `json:"pending_ads"`
	PendingReports int64 `json:"pending_reports"`
}

// DashboardStats collects the admin dashboard totals. PendingAds comes from
// the badge (Redis, read-through to the DB).
func (s *Service) DashboardStats(ctx context.Context) (*Stats, error) {
	var st Stats
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&st.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := db.Model(&models.Ad{}).Where("status <> ?", constants.AdDeleted).Count(&st.TotalAds).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := db.Model(&models.Ad{}).Where("status = ?", constants.AdActive).Count(&st.ActiveAds).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := db.Model(&models.Report{}).Where("status = ?", constants.ReportPending).Count(&st.PendingReports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if s.Badge != nil {
		n, err := s.Badge.PendingAds(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		st.PendingAds = n
	} else {
		if err := db.Model(&models.Ad{}).Where("status = ?", constants.AdPending).Count(&st.PendingAds).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	return &st, nil
}
