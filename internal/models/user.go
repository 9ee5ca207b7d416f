package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a marketplace account. Accounts are never physically deleted;
// moderation flips Status between active/suspended/banned.
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone        string    `gorm:"column:phone;not null" json:"phone"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;not null;default:regular" json:"role"`
	Verified     bool      `gorm:"column:verified;not null;default:false" json:"verified"`
	Status       string    `gorm:"column:status;type:varchar(20);not null;default:active" json:"status"`

	// Aggregate rating kept in lockstep with the ratings table.
	Rating      float64 `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	RatingCount int64   `gorm:"column:rating_count;not null;default:0" json:"rating_count"`

	// Denormalized ad counters. ActiveAds must equal the count of this user's
	// ads with status = active; every transition into or out of active adjusts
	// it inside the same transaction.
	TotalAds  int64 `gorm:"column:total_ads;not null;default:0" json:"total_ads"`
	ActiveAds int64 `gorm:"column:active_ads;not null;default:0" json:"active_ads"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// PublicUser is the seller summary embedded in ad detail responses.
type PublicUser struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Verified    bool      `json:"verified"`
	Rating      float64   `json:"rating"`
	RatingCount int64     `json:"rating_count"`
	ActiveAds   int64     `json:"active_ads"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public strips credentials and moderation internals from a User.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:      u.UserID,
		Name:        u.Name,
		Verified:    u.Verified,
		Rating:      u.Rating,
		RatingCount: u.RatingCount,
		ActiveAds:   u.ActiveAds,
		CreatedAt:   u.CreatedAt,
	}
}
