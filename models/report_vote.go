package models

import "time"

// ReportVote is a single citizen's endorsement of a report. The composite
// unique index makes the vote set a set: duplicate inserts conflict and are
// dropped at the store level.
type ReportVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportID   uint      `gorm:"not null;uniqueIndex:idx_report_voter" json:"report_id"`
	VoterID    uint      `gorm:"not null;uniqueIndex:idx_report_voter" json:"voter_id"`
	VoterEmail *string   `gorm:"size:100" json:"voter_email"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	Report     *Report   `gorm:"foreignKey:ReportID" json:"-"`
}
