package repositories

import (
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/models"
)

type AttachmentRepo interface {
	Create(attachment *models.Attachment) error
	FindByID(id uint) (*models.Attachment, error)
	ListByReportID(reportID uint) ([]models.Attachment, error)
}

type DBAttachmentRepo struct{}

func (r *DBAttachmentRepo) Create(attachment *models.Attachment) error {
	return db.DB.Create(attachment).Error
}

func (r *DBAttachmentRepo) FindByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	err := db.DB.First(&attachment, id).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *DBAttachmentRepo) ListByReportID(reportID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := db.DB.Where("report_id = ?", reportID).Order("created_at desc").Find(&attachments).Error
	return attachments, err
}
