package ratings

import (
	"context"
	"testing"

	"souqah-backend/internal/infrastructure/database"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRatingsTest(t *testing.T) (*Service, *gorm.DB, *models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	ratee := &models.User{Name: "Seller", Email: "s@example.com", Phone: "0551234567", PasswordHash: "x", Role: constants.RoleRegular, Status: constants.UserActive}
	require.NoError(t, db.Create(ratee).Error)
	return &Service{DB: db}, db, ratee
}

func TestRate_Validation(t *testing.T) {
	s, _, ratee := setupRatingsTest(t)
	ctx := context.Background()

	_, err := s.Rate(ctx, ratee.UserID, ratee.UserID, 5, "")
	assert.ErrorIs(t, err, ErrSelfRating)

	_, err = s.Rate(ctx, uuid.New(), ratee.UserID, 0, "")
	assert.ErrorIs(t, err, ErrBadScore)
	_, err = s.Rate(ctx, uuid.New(), ratee.UserID, 6, "")
	assert.ErrorIs(t, err, ErrBadScore)

	_, err = s.Rate(ctx, uuid.New(), uuid.New(), 3, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRate_AggregateRecompute(t *testing.T) {
	s, db, ratee := setupRatingsTest(t)
	ctx := context.Background()
	raterA := uuid.New()
	raterB := uuid.New()

	_, err := s.Rate(ctx, raterA, ratee.UserID, 5, "Great seller")
	require.NoError(t, err)
	_, err = s.Rate(ctx, raterB, ratee.UserID, 2, "Slow to respond")
	require.NoError(t, err)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", ratee.UserID).Error)
	assert.Equal(t, int64(2), u.RatingCount)
	assert.InDelta(t, 3.5, u.Rating, 0.001)

	// Re-rating replaces the old score, not adds a row.
	_, err = s.Rate(ctx, raterB, ratee.UserID, 4, "Better now")
	require.NoError(t, err)
	require.NoError(t, db.First(&u, "user_id = ?", ratee.UserID).Error)
	assert.Equal(t, int64(2), u.RatingCount)
	assert.InDelta(t, 4.5, u.Rating, 0.001)

	var rows int64
	require.NoError(t, db.Model(&models.Rating{}).Where("ratee_id = ?", ratee.UserID).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestListForUser(t *testing.T) {
	s, _, ratee := setupRatingsTest(t)
	ctx := context.Background()

	_, err := s.Rate(ctx, uuid.New(), ratee.UserID, 5, "A")
	require.NoError(t, err)
	_, err = s.Rate(ctx, uuid.New(), ratee.UserID, 3, "B")
	require.NoError(t, err)

	out, err := s.ListForUser(ctx, ratee.UserID)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
