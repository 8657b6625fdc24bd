package models

import "time"

// Attachment references a media object (photo or voice note) stored in the
// object store. Rows only carry metadata; bytes live in the bucket.
type Attachment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReportID    uint      `gorm:"not null;index" json:"report_id"`
	ObjectKey   string    `gorm:"size:300;not null;unique" json:"object_key"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
