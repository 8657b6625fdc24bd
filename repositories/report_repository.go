package repositories

import (
	"errors"
	"time"

	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/models"
	"gorm.io/gorm"
)

// ErrVersionConflict signals a lost optimistic-lock race: the row exists but
// its version moved under the caller.
var ErrVersionConflict = errors.New("report version conflict")

type ReportRepo interface {
	Create(report *models.Report) error
	FindByID(id uint) (*models.Report, error)
	FindByTrackingID(trackingID string) (*models.Report, error)
	List(filter dto.ReportFilter) ([]models.Report, error)
	ListBetween(start, end *time.Time) ([]models.Report, error)
	// UpdateFields applies a version-checked partial update. The report row
	// version is bumped on success.
	UpdateFields(id uint, version uint, fields map[string]interface{}) error
	// UpdateWithLog applies a version-checked partial update and appends a
	// status-update row in the same transaction, so a department change is
	// never visible without its log entry.
	UpdateWithLog(id uint, version uint, fields map[string]interface{}, update *models.ReportUpdate) error
}

type DBReportRepo struct{}

func (r *DBReportRepo) Create(report *models.Report) error {
	return db.DB.Create(report).Error
}

func (r *DBReportRepo) FindByID(id uint) (*models.Report, error) {
	var report models.Report
	err := db.DB.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DBReportRepo) FindByTrackingID(trackingID string) (*models.Report, error) {
	var report models.Report
	err := db.DB.Where("tracking_id = ?", trackingID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DBReportRepo) List(filter dto.ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	query := db.DB.Model(&models.Report{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Department != nil {
		query = query.Where("department = ?", *filter.Department)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", *filter.End)
	}

	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&reports).Error
	return reports, err
}

func (r *DBReportRepo) ListBetween(start, end *time.Time) ([]models.Report, error) {
	var reports []models.Report
	query := db.DB.Model(&models.Report{})
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	err := query.Find(&reports).Error
	return reports, err
}

func (r *DBReportRepo) UpdateFields(id uint, version uint, fields map[string]interface{}) error {
	return applyVersionedUpdate(db.DB, id, version, fields)
}

func (r *DBReportRepo) UpdateWithLog(id uint, version uint, fields map[string]interface{}, update *models.ReportUpdate) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyVersionedUpdate(tx, id, version, fields); err != nil {
			return err
		}
		return tx.Create(update).Error
	})
}

func applyVersionedUpdate(tx *gorm.DB, id uint, version uint, fields map[string]interface{}) error {
	res := tx.Model(&models.Report{}).
		Where("id = ? AND version = ?", id, version).
		Updates(withVersionBump(fields))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// withVersionBump clones the field set and adds the version increment. The
// caller's map is left untouched.
func withVersionBump(fields map[string]interface{}) map[string]interface{} {
	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	return values
}
