package messages

import (
	"context"
	"testing"
	"time"

	"souqah-backend/internal/infrastructure/database"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type msgFixture struct {
	svc    *Service
	db     *gorm.DB
	seller *models.User
	buyer  *models.User
	ad     *models.Ad
}

func setupMessagesTest(t *testing.T) msgFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	seller := &models.User{Name: "Seller", Email: "seller@example.com", Phone: "0551234567", PasswordHash: "x", Role: constants.RoleRegular, Status: constants.UserActive}
	buyer := &models.User{Name: "Buyer", Email: "buyer@example.com", Phone: "0557654321", PasswordHash: "x", Role: constants.RoleRegular, Status: constants.UserActive}
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(buyer).Error)

	cat := &models.Category{Slug: "cars", NameAr: "سيارات", NameEn: "Cars"}
	require.NoError(t, db.Create(cat).Error)
	now := time.Now()
	ad := &models.Ad{
		UserID: seller.UserID, Title: "Camry", Slug: "camry-1", Description: "Clean",
		Price: 85000, PriceType: constants.PriceFixed, CategoryID: cat.CategoryID,
		City: "Riyadh", ContactPhone: "0551234567", Status: constants.AdActive,
		PublishedAt: now, ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(ad).Error)

	return msgFixture{svc: &Service{DB: db}, db: db, seller: seller, buyer: buyer, ad: ad}
}

func TestSend_DefaultsReceiverToOwner(t *testing.T) {
	f := setupMessagesTest(t)

	msg, err := f.svc.Send(context.Background(), SendInput{
		AdID:     f.ad.AdID,
		SenderID: f.buyer.UserID,
		Body:     "Is it still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, f.seller.UserID, msg.ReceiverID)
	assert.False(t, msg.Read)

	var got models.Ad
	require.NoError(t, f.db.First(&got, "ad_id = ?", f.ad.AdID).Error)
	assert.Equal(t, int64(1), got.MessageCount)
}

func TestSend_Validation(t *testing.T) {
	f := setupMessagesTest(t)
	ctx := context.Background()

	_, err := f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.buyer.UserID, Body: "  "})
	assert.ErrorIs(t, err, ErrBodyRequired)

	// The owner replying must name a receiver.
	_, err = f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.seller.UserID, Body: "Yes"})
	assert.ErrorIs(t, err, ErrReceiverRequired)

	// Messaging yourself is rejected.
	_, err = f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.seller.UserID, ReceiverID: f.seller.UserID, Body: "Hi"})
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = f.svc.Send(ctx, SendInput{AdID: uuid.New(), SenderID: f.buyer.UserID, Body: "Hi"})
	assert.ErrorIs(t, err, ErrAdNotFound)

	_, err = f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.buyer.UserID, ReceiverID: uuid.New(), Body: "Hi"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestSend_BannedSender(t *testing.T) {
	f := setupMessagesTest(t)
	require.NoError(t, f.db.Model(f.buyer).Update("status", constants.UserBanned).Error)

	_, err := f.svc.Send(context.Background(), SendInput{
		AdID: f.ad.AdID, SenderID: f.buyer.UserID, Body: "Hi",
	})
	assert.ErrorIs(t, err, ErrSenderBanned)
}

func TestConversations_GroupingAndUnread(t *testing.T) {
	f := setupMessagesTest(t)
	ctx := context.Background()

	_, err := f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.buyer.UserID, Body: "First"})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.buyer.UserID, Body: "Second"})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.seller.UserID, ReceiverID: f.buyer.UserID, Body: "Reply"})
	require.NoError(t, err)

	// Seller inbox: one conversation, two unread from the buyer.
	convos, err := f.svc.Conversations(ctx, f.seller.UserID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, f.ad.AdID, convos[0].AdID)
	assert.Equal(t, f.buyer.UserID, convos[0].OtherUserID)
	assert.Equal(t, "Buyer", convos[0].OtherName)
	assert.Equal(t, "Camry", convos[0].AdTitle)
	assert.Equal(t, int64(2), convos[0].UnreadCount)

	// Buyer inbox: same conversation from the other side, one unread.
	convos, err = f.svc.Conversations(ctx, f.buyer.UserID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, f.seller.UserID, convos[0].OtherUserID)
	assert.Equal(t, int64(1), convos[0].UnreadCount)
}

func TestFetch_MarksRead(t *testing.T) {
	f := setupMessagesTest(t)
	ctx := context.Background()

	_, err := f.svc.Send(ctx, SendInput{AdID: f.ad.AdID, SenderID: f.buyer.UserID, Body: "Hello"})
	require.NoError(t, err)

	msgs, err := f.svc.Fetch(ctx, f.seller.UserID, f.ad.AdID, f.buyer.UserID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)

	// The unread count drains once fetched.
	convos, err := f.svc.Conversations(ctx, f.seller.UserID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, int64(0), convos[0].UnreadCount)
}
