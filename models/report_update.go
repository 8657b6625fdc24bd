package models

import "time"

// ReportUpdate is an append-only log entry documenting a status change.
// One row is written per transition; display order is newest-first.
type ReportUpdate struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ReportID      uint         `gorm:"not null;index" json:"report_id"`
	Status        ReportStatus `gorm:"type:report_status;not null" json:"status"`
	Message       string       `gorm:"type:text" json:"message"`
	UpdatedByName string       `gorm:"size:100" json:"updated_by_name"`
	IsPublic      bool         `gorm:"default:true" json:"is_public"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	Report        *Report      `gorm:"foreignKey:ReportID" json:"-"`
}
