package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	Action       string         `gorm:"size:50;not null;index" json:"action"`
	ResourceType string         `gorm:"size:50;index" json:"resource_type"`
	ResourceID   string         `gorm:"size:64" json:"resource_id"`
	OldData      datatypes.JSON `json:"old_data"`
	NewData      datatypes.JSON `json:"new_data"`
	IPAddress    string         `gorm:"size:45" json:"ip_address"`
	UserAgent    string         `gorm:"size:255" json:"user_agent"`
	Description  string         `gorm:"size:500" json:"description"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}
