package messages

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

// Service is the ad-scoped messaging layer. Clients poll; there is no push
// channel, so ordering between independent pollers is whatever created_at
// gives.
type Service struct {
	DB *gorm.DB
}

// SendInput carries one outgoing message. ReceiverID may be zero when the
// sender is not the ad owner; the receiver then defaults to the owner.
type SendInput struct {
	AdID       uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Body       string
}

// Send persists a message and bumps the ad's message counter in the same
// transaction.
func (s *Service) Send(ctx context.Context, in SendInput) (*models.Message, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, ErrBodyRequired
	}

	var ad models.Ad
	err := s.DB.WithContext(ctx).
		Where("ad_id = ? AND status <> ?", in.AdID, constants.AdDeleted).
		First(&ad).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	receiverID := in.ReceiverID
	if receiverID == uuid.Nil {
		if in.SenderID == ad.UserID {
			return nil, ErrReceiverRequired
		}
		receiverID = ad.UserID
	}
	if receiverID == in.SenderID {
		return nil, ErrSelfMessage
	}

	var sender models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", in.SenderID).First(&sender).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if sender.Status == constants.UserBanned {
		return nil, ErrSenderBanned
	}
	var receiverCount int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", receiverID).Count(&receiverCount).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if receiverCount == 0 {
		return nil, ErrReceiverNotFound
	}

	msg := &models.Message{
		AdID:       in.AdID,
		SenderID:   in.SenderID,
		ReceiverID: receiverID,
		Body:       in.Body,
	}
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(msg).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Model(&models.Ad{}).Where("ad_id = ?", in.AdID).
		Update("message_count", gorm.Expr("message_count + 1")).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return msg, nil
}

// Conversation is the derived grouping key (ad, counterparty) plus preview
// data. It is never persisted.
type Conversation struct {
	AdID        uuid.UUID      `json:"ad_id"`
	AdTitle     string         `json:"ad_title"`
	OtherUserID uuid.UUID      `json:"other_user_id"`
	OtherName   string         `json:"other_name"`
	LastMessage models.Message `json:"last_message"`
	UnreadCount int64          `json:"unread_count"`
}

// Conversations folds the user's messages into derived conversations, most
// recently touched first.
func (s *Service) Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	var msgs []models.Message
	err := s.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	type key struct {
		adID  uuid.UUID
		other uuid.UUID
	}
	order := make([]key, 0)
	grouped := make(map[key]*Conversation)
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		k := key{adID: m.AdID, other: other}
		conv, ok := grouped[k]
		if !ok {
			conv = &Conversation{AdID: m.AdID, OtherUserID: other, LastMessage: m}
			grouped[k] = conv
			order = append(order, k)
		}
		if m.ReceiverID == userID && !m.Read {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, k := range order {
		conv := grouped[k]
		var ad models.Ad
		if err := s.DB.WithContext(ctx).Select("title").Where("ad_id = ?", conv.AdID).First(&ad).Error; err == nil {
			conv.AdTitle = ad.Title
		}
		var other models.User
		if err := s.DB.WithContext(ctx).Select("name").Where("user_id = ?", conv.OtherUserID).First(&other).Error; err == nil {
			conv.OtherName = other.Name
		}
		out = append(out, *conv)
	}
	return out, nil
}

// Fetch returns one conversation's messages oldest first and marks the
// messages addressed to the caller as read. Pollers re-issue this call on an
// interval.
func (s *Service) Fetch(ctx context.Context, userID, adID, otherID uuid.UUID) ([]models.Message, error) {
	if userID == otherID {
		return nil, ErrSelfMessage
	}
	var msgs []models.Message
	err := s.DB.WithContext(ctx).
		Where("ad_id = ?", adID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	err = s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("ad_id = ? AND sender_id = ? AND receiver_id = ? AND read = ?", adID, otherID, userID, false).
		Update("read", true).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	for i := range msgs {
		if msgs[i].ReceiverID == userID {
			msgs[i].Read = true
		}
	}
	return msgs, nil
}
