package moderation

import (
	"context"
	"testing"
	"time"

	"souqah-backend/internal/application/badge"
	"souqah-backend/internal/infrastructure/database"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupModerationTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Service{DB: db, Badge: &badge.Badge{DB: db, Rdb: rdb}}, db
}

func seedModUser(t *testing.T, db *gorm.DB, status string) *models.User {
	u := &models.User{
		Name:         "Seller",
		Email:        uuid.New().String() + "@example.com",
		Phone:        "0551234567",
		PasswordHash: "x",
		Role:         constants.RoleRegular,
		Status:       status,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedModAd(t *testing.T, db *gorm.DB, owner *models.User, status string) *models.Ad {
	cat := &models.Category{Slug: uuid.New().String(), NameAr: "فئة", NameEn: "Category"}
	require.NoError(t, db.Create(cat).Error)
	now := time.Now()
	ad := &models.Ad{
		UserID:       owner.UserID,
		Title:        "Camry 2020",
		Slug:         uuid.New().String(),
		Description:  "Clean",
		Price:        85000,
		PriceType:    constants.PriceFixed,
		CategoryID:   cat.CategoryID,
		City:         "Riyadh",
		ContactPhone: "0551234567",
		Status:       status,
		PublishedAt:  now,
		ExpiresAt:    now.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(ad).Error)
	require.NoError(t, db.Model(&models.Category{}).Where("category_id = ?", cat.CategoryID).
		Update("total_ads", gorm.Expr("total_ads + 1")).Error)
	return ad
}

func TestTransitionAd_Approve(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, owner, constants.AdPending)
	ctx := context.Background()

	n, err := s.Badge.PendingAds(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := s.TransitionAd(ctx, ad.AdID, AdApprove)
	require.NoError(t, err)
	assert.Equal(t, constants.AdActive, got.Status)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", owner.UserID).Error)
	assert.Equal(t, int64(1), u.ActiveAds)

	n, err = s.Badge.PendingAds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestTransitionAd_ApproveActiveIsIllegal(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, owner, constants.AdActive)

	_, err := s.TransitionAd(context.Background(), ad.AdID, AdApprove)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// The ad is untouched.
	var got models.Ad
	require.NoError(t, db.First(&got, "ad_id = ?", ad.AdID).Error)
	assert.Equal(t, constants.AdActive, got.Status)
}

func TestTransitionAd_Reject(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, owner, constants.AdPending)

	got, err := s.TransitionAd(context.Background(), ad.AdID, AdReject)
	require.NoError(t, err)
	assert.Equal(t, constants.AdRejected, got.Status)

	// Rejected ads never touched the active counter.
	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", owner.UserID).Error)
	assert.Equal(t, int64(0), u.ActiveAds)
}

func TestTransitionAd_ToggleFeatured(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, owner, constants.AdActive)
	ctx := context.Background()

	got, err := s.TransitionAd(ctx, ad.AdID, AdToggleFeatured)
	require.NoError(t, err)
	assert.True(t, got.Featured)

	got, err = s.TransitionAd(ctx, ad.AdID, AdToggleFeatured)
	require.NoError(t, err)
	assert.False(t, got.Featured)

	pending := seedModAd(t, db, owner, constants.AdPending)
	_, err = s.TransitionAd(ctx, pending.AdID, AdToggleFeatured)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransitionAd_MarkSold(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", owner.UserID).
		Update("active_ads", 1).Error)
	ad := seedModAd(t, db, owner, constants.AdActive)

	got, err := s.TransitionAd(context.Background(), ad.AdID, AdMarkSold)
	require.NoError(t, err)
	assert.Equal(t, constants.AdSold, got.Status)
	assert.NotNil(t, got.SoldAt)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", owner.UserID).Error)
	assert.Equal(t, int64(0), u.ActiveAds)
}

func TestTransitionAd_DeleteDeletedIsIllegal(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, owner, constants.AdDeleted)

	_, err := s.TransitionAd(context.Background(), ad.AdID, AdDelete)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransitionAd_NotFound(t *testing.T) {
	s, _ := setupModerationTest(t)
	_, err := s.TransitionAd(context.Background(), uuid.New(), AdApprove)
	assert.ErrorIs(t, err, ErrAdNotFound)
}

func TestTransitionUser_Table(t *testing.T) {
	s, db := setupModerationTest(t)
	ctx := context.Background()

	// active → suspended → banned → active
	u := seedModUser(t, db, constants.UserActive)
	got, err := s.TransitionUser(ctx, u.UserID, UserSuspend)
	require.NoError(t, err)
	assert.Equal(t, constants.UserSuspended, got.Status)

	got, err = s.TransitionUser(ctx, u.UserID, UserBan)
	require.NoError(t, err)
	assert.Equal(t, constants.UserBanned, got.Status)

	// Banned users cannot be suspended or re-banned.
	_, err = s.TransitionUser(ctx, u.UserID, UserSuspend)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	_, err = s.TransitionUser(ctx, u.UserID, UserBan)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	got, err = s.TransitionUser(ctx, u.UserID, UserActivate)
	require.NoError(t, err)
	assert.Equal(t, constants.UserActive, got.Status)

	// Activating an already-active user goes nowhere.
	_, err = s.TransitionUser(ctx, u.UserID, UserActivate)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransitionUser_VerifyOnlyWhileActive(t *testing.T) {
	s, db := setupModerationTest(t)
	ctx := context.Background()

	u := seedModUser(t, db, constants.UserActive)
	got, err := s.TransitionUser(ctx, u.UserID, UserVerify)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	suspended := seedModUser(t, db, constants.UserSuspended)
	_, err = s.TransitionUser(ctx, suspended.UserID, UserVerify)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func seedReport(t *testing.T, db *gorm.DB, ad *models.Ad, reporter *models.User) *models.Report {
	r := &models.Report{
		AdID:       ad.AdID,
		ReporterID: reporter.UserID,
		SellerID:   ad.UserID,
		Reason:     "Scam listing",
		Status:     constants.ReportPending,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestResolveReport_Dismiss(t *testing.T) {
	s, db := setupModerationTest(t)
	seller := seedModUser(t, db, constants.UserActive)
	reporter := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, seller, constants.AdActive)
	report := seedReport(t, db, ad, reporter)

	got, err := s.ResolveReport(context.Background(), report.ReportID, ReportDismiss, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, constants.ReportDismissed, got.Status)
	assert.NotNil(t, got.ResolvedAt)
	assert.Contains(t, string(got.Resolution), "dismiss")

	// A closed report cannot be resolved again.
	_, err = s.ResolveReport(context.Background(), report.ReportID, ReportResolve, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestResolveReport_DeleteAdCascade(t *testing.T) {
	s, db := setupModerationTest(t)
	seller := seedModUser(t, db, constants.UserActive)
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", seller.UserID).
		Update("active_ads", 1).Error)
	reporter := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, seller, constants.AdActive)
	report := seedReport(t, db, ad, reporter)

	got, err := s.ResolveReport(context.Background(), report.ReportID, ReportResolveDeleteAd, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, constants.ReportResolved, got.Status)

	var gotAd models.Ad
	require.NoError(t, db.First(&gotAd, "ad_id = ?", ad.AdID).Error)
	assert.Equal(t, constants.AdDeleted, gotAd.Status)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", seller.UserID).Error)
	assert.Equal(t, int64(0), u.ActiveAds)
}

func TestResolveReport_BanSeller(t *testing.T) {
	s, db := setupModerationTest(t)
	seller := seedModUser(t, db, constants.UserActive)
	reporter := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, seller, constants.AdActive)
	report := seedReport(t, db, ad, reporter)

	got, err := s.ResolveReport(context.Background(), report.ReportID, ReportResolveBan, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, constants.ReportResolved, got.Status)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", seller.UserID).Error)
	assert.Equal(t, constants.UserBanned, u.Status)
}

func TestResolveReport_BanAlreadyBannedFailsWhole(t *testing.T) {
	s, db := setupModerationTest(t)
	seller := seedModUser(t, db, constants.UserBanned)
	reporter := seedModUser(t, db, constants.UserActive)
	ad := seedModAd(t, db, seller, constants.AdActive)
	report := seedReport(t, db, ad, reporter)

	_, err := s.ResolveReport(context.Background(), report.ReportID, ReportResolveBan, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// The cascade failed, so the report stays pending.
	var got models.Report
	require.NoError(t, db.First(&got, "report_id = ?", report.ReportID).Error)
	assert.Equal(t, constants.ReportPending, got.Status)
	assert.Nil(t, got.ResolvedAt)
}

func TestPendingAds_OldestFirst(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	first := seedModAd(t, db, owner, constants.AdPending)
	require.NoError(t, db.Model(&models.Ad{}).Where("ad_id = ?", first.AdID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	seedModAd(t, db, owner, constants.AdPending)
	seedModAd(t, db, owner, constants.AdActive)

	queue, err := s.PendingAds(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.AdID, queue[0].AdID)
}

func TestDashboardStats(t *testing.T) {
	s, db := setupModerationTest(t)
	owner := seedModUser(t, db, constants.UserActive)
	reporter := seedModUser(t, db, constants.UserActive)
	active := seedModAd(t, db, owner, constants.AdActive)
	seedModAd(t, db, owner, constants.AdPending)
	seedModAd(t, db, owner, constants.AdDeleted)
	seedReport(t, db, active, reporter)

	st, err := s.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalUsers)
	assert.Equal(t, int64(2), st.TotalAds) // deleted excluded
	assert.Equal(t, int64(1), st.ActiveAds)
	assert.Equal(t, int64(1), st.PendingAds)
	assert.Equal(t, int64(1), st.PendingReports)
}
