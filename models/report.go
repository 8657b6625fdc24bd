package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusSubmitted    ReportStatus = "submitted"
	ReportStatusAcknowledged ReportStatus = "acknowledged"
	ReportStatusInProgress   ReportStatus = "in_progress"
	ReportStatusResolved     ReportStatus = "resolved"
	ReportStatusClosed       ReportStatus = "closed"
	ReportStatusRejected     ReportStatus = "rejected"
)

type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"
	ReportPriorityUrgent ReportPriority = "urgent"
)

type ReportCategory string

const (
	ReportCategoryRoads      ReportCategory = "roads"
	ReportCategoryLighting   ReportCategory = "lighting"
	ReportCategorySanitation ReportCategory = "sanitation"
	ReportCategoryWater      ReportCategory = "water"
	ReportCategoryParks      ReportCategory = "parks"
	ReportCategorySafety     ReportCategory = "safety"
	ReportCategoryNoise      ReportCategory = "noise"
	ReportCategoryOther      ReportCategory = "other"
)

type Report struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	TrackingID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"tracking_id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Category        ReportCategory `gorm:"type:report_category;default:'other';not null" json:"category"`
	Priority        ReportPriority `gorm:"type:report_priority;default:'medium';not null" json:"priority"`
	Status          ReportStatus   `gorm:"type:report_status;default:'submitted';not null" json:"status"`
	LocationLat     *float64       `gorm:"type:decimal(10,8)" json:"location_lat"`
	LocationLng     *float64       `gorm:"type:decimal(11,8)" json:"location_lng"`
	LocationAddress string         `gorm:"size:500" json:"location_address"`
	ReporterName    *string        `gorm:"size:100" json:"reporter_name"`
	ReporterEmail   *string        `gorm:"size:100" json:"reporter_email"`
	ReporterPhone   *string        `gorm:"size:20" json:"reporter_phone"`
	UserID          *uint          `gorm:"index" json:"user_id"`
	Department      *string        `gorm:"size:100;index" json:"department"`
	AssignedTo      *string        `gorm:"size:100" json:"assigned_to"`
	CitizenRating   *int           `json:"citizen_rating"`
	CitizenFeedback *string        `gorm:"type:text" json:"citizen_feedback"`
	Version         uint           `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ValidStatuses lists every persisted status value.
var ValidStatuses = []ReportStatus{
	ReportStatusSubmitted,
	ReportStatusAcknowledged,
	ReportStatusInProgress,
	ReportStatusResolved,
	ReportStatusClosed,
	ReportStatusRejected,
}

// ValidCategories lists every persisted category value.
var ValidCategories = []ReportCategory{
	ReportCategoryRoads,
	ReportCategoryLighting,
	ReportCategorySanitation,
	ReportCategoryWater,
	ReportCategoryParks,
	ReportCategorySafety,
	ReportCategoryNoise,
	ReportCategoryOther,
}

// ValidPriorities lists every persisted priority value.
var ValidPriorities = []ReportPriority{
	ReportPriorityLow,
	ReportPriorityMedium,
	ReportPriorityHigh,
	ReportPriorityUrgent,
}

func (s ReportStatus) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (c ReportCategory) Valid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (p ReportPriority) Valid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed. Closed and
// rejected reports stay where they are.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusClosed || s == ReportStatusRejected
}

// CanTransitionTo enforces the lifecycle table: submitted is the sole initial
// state and is never re-entered, terminal states admit no movement, and every
// other pair of non-initial states is reachable. Re-applying the current
// status is allowed and still appends a fresh update row.
func (s ReportStatus) CanTransitionTo(target ReportStatus) bool {
	if !target.Valid() {
		return false
	}
	if target == ReportStatusSubmitted {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return true
}

// AcceptsRating reports whether citizens may rate the report.
func (s ReportStatus) AcceptsRating() bool {
	return s == ReportStatusResolved || s == ReportStatusClosed
}
