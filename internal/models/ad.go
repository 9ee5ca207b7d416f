package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ad is a classified listing. Deletion is a status transition, never a row
// removal, so the status column doubles as the tombstone marker.
type Ad struct {
	AdID          uuid.UUID  `gorm:"column:ad_id;type:uuid;primaryKey" json:"ad_id"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title         string     `gorm:"column:title;not null" json:"title"`
	Slug          string     `gorm:"column:slug;not null;index" json:"slug"`
	Description   string     `gorm:"column:description;not null" json:"description"`
	Price         float64    `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	PriceType     string     `gorm:"column:price_type;type:varchar(20);not null;default:fixed" json:"price_type"`
	CategoryID    uuid.UUID  `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	SubcategoryID *uuid.UUID `gorm:"column:subcategory_id;type:uuid;index" json:"subcategory_id"`
	City          string     `gorm:"column:city;not null;index" json:"city"`
	District      *string    `gorm:"column:district" json:"district"`
	Location      *string    `gorm:"column:location" json:"location"`
	ContactPhone  string     `gorm:"column:contact_phone;not null" json:"contact_phone"`
	WhatsApp      *string    `gorm:"column:whatsapp" json:"whatsapp"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:pending;index" json:"status"`
	Featured      bool       `gorm:"column:featured;not null;default:false" json:"featured"`

	ViewCount     int64 `gorm:"column:view_count;not null;default:0" json:"view_count"`
	MessageCount  int64 `gorm:"column:message_count;not null;default:0" json:"message_count"`
	FavoriteCount int64 `gorm:"column:favorite_count;not null;default:0" json:"favorite_count"`

	PublishedAt time.Time  `gorm:"column:published_at" json:"published_at"`
	ExpiresAt   time.Time  `gorm:"column:expires_at" json:"expires_at"`
	SoldAt      *time.Time `gorm:"column:sold_at" json:"sold_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Images []AdImage `gorm:"foreignKey:AdID;references:AdID" json:"images"`
}

func (Ad) TableName() string {
	return "ads"
}

func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	if a.AdID == uuid.Nil {
		a.AdID = uuid.New()
	}
	return nil
}

// AdImage is one image of an ad. At most one row per ad carries IsPrimary and
// DisplayOrder is a dense 0-based sequence; the ads service normalizes both on
// create.
type AdImage struct {
	ImageID      uuid.UUID `gorm:"column:image_id;type:uuid;primaryKey" json:"image_id"`
	AdID         uuid.UUID `gorm:"column:ad_id;type:uuid;not null;index" json:"ad_id"`
	URL          string    `gorm:"column:url;not null" json:"url"`
	IsPrimary    bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdImage) TableName() string {
	return "ad_images"
}

func (i *AdImage) BeforeCreate(tx *gorm.DB) error {
	if i.ImageID == uuid.Nil {
		i.ImageID = uuid.New()
	}
	return nil
}
