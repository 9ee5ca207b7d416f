package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directed text record between two users, scoped to one ad.
// A conversation is derived from (ad_id, counterparty) and never stored.
type Message struct {
	MessageID  uuid.UUID `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	AdID       uuid.UUID `gorm:"column:ad_id;type:uuid;not null;index" json:"ad_id"`
	SenderID   uuid.UUID `gorm:"column:sender_id;type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"column:receiver_id;type:uuid;not null;index" json:"receiver_id"`
	Body       string    `gorm:"column:body;not null" json:"body"`
	Read       bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
