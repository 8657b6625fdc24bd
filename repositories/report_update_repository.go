package repositories

import (
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/models"
)

type ReportUpdateRepo interface {
	Create(update *models.ReportUpdate) error
	ListByReportID(reportID uint, publicOnly bool) ([]models.ReportUpdate, error)
}

type DBReportUpdateRepo struct{}

func (r *DBReportUpdateRepo) Create(update *models.ReportUpdate) error {
	return db.DB.Create(update).Error
}

func (r *DBReportUpdateRepo) ListByReportID(reportID uint, publicOnly bool) ([]models.ReportUpdate, error) {
	var updates []models.ReportUpdate
	query := db.DB.Where("report_id = ?", reportID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	err := query.Order("created_at desc").Find(&updates).Error
	return updates, err
}
