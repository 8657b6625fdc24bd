package repositories

import (
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/models"
)

type NotificationRepo interface {
	Create(notification *models.Notification) error
	ListByUserID(userID uint, unreadOnly bool) ([]models.Notification, error)
	MarkRead(id uint, userID uint) error
	MarkDelivered(id uint, pushSent, emailSent bool) error
}

type DBNotificationRepo struct{}

func (r *DBNotificationRepo) Create(notification *models.Notification) error {
	return db.DB.Create(notification).Error
}

func (r *DBNotificationRepo) ListByUserID(userID uint, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := db.DB.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

func (r *DBNotificationRepo) MarkRead(id uint, userID uint) error {
	return db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *DBNotificationRepo) MarkDelivered(id uint, pushSent, emailSent bool) error {
	fields := map[string]interface{}{}
	if pushSent {
		fields["push_sent"] = true
	}
	if emailSent {
		fields["email_sent"] = true
	}
	if len(fields) == 0 {
		return nil
	}
	return db.DB.Model(&models.Notification{}).Where("id = ?", id).Updates(fields).Error
}
