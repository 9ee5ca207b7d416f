package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a (user, ad) membership pair. The composite unique index is the
// uniqueness guard: at most one row per pair regardless of concurrent adds.
type Favorite struct {
	FavoriteID uuid.UUID `gorm:"column:favorite_id;type:uuid;primaryKey" json:"favorite_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorites_user_ad" json:"user_id"`
	AdID       uuid.UUID `gorm:"column:ad_id;type:uuid;not null;uniqueIndex:idx_favorites_user_ad" json:"ad_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.FavoriteID == uuid.Nil {
		f.FavoriteID = uuid.New()
	}
	return nil
}
