package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one user's review of another. One row per (rater, ratee); the
// ratee's mean rating and count are recomputed in the same transaction as any
// insert or update here.
type Rating struct {
	RatingID  uuid.UUID `gorm:"column:rating_id;type:uuid;primaryKey" json:"rating_id"`
	RaterID   uuid.UUID `gorm:"column:rater_id;type:uuid;not null;uniqueIndex:idx_ratings_pair" json:"rater_id"`
	RateeID   uuid.UUID `gorm:"column:ratee_id;type:uuid;not null;uniqueIndex:idx_ratings_pair" json:"ratee_id"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	Comment   string    `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.RatingID == uuid.Nil {
		r.RatingID = uuid.New()
	}
	return nil
}
