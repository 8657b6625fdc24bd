package repositories

import (
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/models"
	"gorm.io/gorm/clause"
)

type VoteRepo interface {
	// Upsert inserts the vote; a duplicate (report, voter) pair is dropped
	// by the unique index and is not an error.
	Upsert(vote *models.ReportVote) error
	Delete(reportID, voterID uint) error
	Count(reportID uint) (int, error)
	HasVoted(reportID, voterID uint) (bool, error)
}

type DBVoteRepo struct{}

func (r *DBVoteRepo) Upsert(vote *models.ReportVote) error {
	return db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "report_id"}, {Name: "voter_id"}},
		DoNothing: true,
	}).Create(vote).Error
}

func (r *DBVoteRepo) Delete(reportID, voterID uint) error {
	return db.DB.
		Where("report_id = ? AND voter_id = ?", reportID, voterID).
		Delete(&models.ReportVote{}).Error
}

func (r *DBVoteRepo) Count(reportID uint) (int, error) {
	var count int64
	err := db.DB.Model(&models.ReportVote{}).
		Where("report_id = ?", reportID).
		Count(&count).Error
	return int(count), err
}

func (r *DBVoteRepo) HasVoted(reportID, voterID uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.ReportVote{}).
		Where("report_id = ? AND voter_id = ?", reportID, voterID).
		Count(&count).Error
	return count > 0, err
}
