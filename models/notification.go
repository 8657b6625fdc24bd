package models

import "time"

type NotificationType string

const (
	NotificationTypeReportSubmitted NotificationType = "report_submitted"
	NotificationTypeStatusUpdate    NotificationType = "status_update"
	NotificationTypeAssignment      NotificationType = "assignment"
	NotificationTypeResolution      NotificationType = "resolution"
	NotificationTypeFeedbackRequest NotificationType = "feedback_request"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    *uint            `gorm:"index" json:"user_id"`
	ReportID  uint             `gorm:"not null;index" json:"report_id"`
	Type      NotificationType `gorm:"type:notification_type;not null" json:"type"`
	Title     string           `gorm:"size:200;not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	PushSent  bool             `gorm:"default:false" json:"push_sent"`
	EmailSent bool             `gorm:"default:false" json:"email_sent"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
