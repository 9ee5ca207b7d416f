package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is a complaint against an ad. Pending is the only mutable state;
// Resolution holds the audit payload of how it was closed (action, actor).
type Report struct {
	ReportID   uuid.UUID      `gorm:"column:report_id;type:uuid;primaryKey" json:"report_id"`
	AdID       uuid.UUID      `gorm:"column:ad_id;type:uuid;not null;index" json:"ad_id"`
	ReporterID uuid.UUID      `gorm:"column:reporter_id;type:uuid;not null;index" json:"reporter_id"`
	SellerID   uuid.UUID      `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	Reason     string         `gorm:"column:reason;not null" json:"reason"`
	Status     string         `gorm:"column:status;type:varchar(20);not null;default:pending;index" json:"status"`
	Resolution datatypes.JSON `gorm:"column:resolution;type:json" json:"resolution,omitempty"`
	ResolvedAt *time.Time     `gorm:"column:resolved_at" json:"resolved_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ReportID == uuid.Nil {
		r.ReportID = uuid.New()
	}
	return nil
}
