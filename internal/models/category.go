package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a top-level taxonomy node. TotalAds counts non-deleted ads only.
type Category struct {
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey" json:"category_id"`
	Slug       string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	NameAr     string    `gorm:"column:name_ar;not null" json:"name_ar"`
	NameEn     string    `gorm:"column:name_en;not null" json:"name_en"`
	Icon       string    `gorm:"column:icon" json:"icon"`
	TotalAds   int64     `gorm:"column:total_ads;not null;default:0" json:"total_ads"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"subcategories,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}

// Subcategory is nested under exactly one category.
type Subcategory struct {
	SubcategoryID uuid.UUID `gorm:"column:subcategory_id;type:uuid;primaryKey" json:"subcategory_id"`
	CategoryID    uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	NameAr        string    `gorm:"column:name_ar;not null" json:"name_ar"`
	NameEn        string    `gorm:"column:name_en;not null" json:"name_en"`
	TotalAds      int64     `gorm:"column:total_ads;not null;default:0" json:"total_ads"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.SubcategoryID == uuid.Nil {
		s.SubcategoryID = uuid.New()
	}
	return nil
}
