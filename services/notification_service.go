package services

import (
	"errors"
	"log"

	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/repositories"
)

// PushSender delivers push notifications. The default implementation only
// logs; a real gateway (FCM, OneSignal) can be swapped in via the container.
type PushSender interface {
	SendPush(userID uint, title, message string) error
}

// EmailSender delivers email notifications. The default implementation only
// logs.
type EmailSender interface {
	SendEmail(email, title, message string, reportID uint) error
}

type LogPushSender struct{}

func (LogPushSender) SendPush(userID uint, title, message string) error {
	log.Printf("[push] user=%d title=%q message=%q", userID, title, message)
	return nil
}

type LogEmailSender struct{}

func (LogEmailSender) SendEmail(email, title, message string, reportID uint) error {
	log.Printf("[email] to=%s report=%d title=%q message=%q", email, reportID, title, message)
	return nil
}

var ErrNotificationInput = errors.New("notification requires a report, type, title and message")

type NotificationService struct {
	repos *repositories.Repos
	push  PushSender
	email EmailSender
}

func NewNotificationService(repos *repositories.Repos, push PushSender, email EmailSender) *NotificationService {
	return &NotificationService{repos: repos, push: push, email: email}
}

// Notify records the notification row, then attempts push and email delivery.
// Delivery failures are logged and flagged on the row; they never fail the
// caller's operation.
func (s *NotificationService) Notify(reportID uint, userID *uint, email *string, ntype models.NotificationType, title, message string) (*models.Notification, error) {
	if reportID == 0 || ntype == "" || title == "" || message == "" {
		return nil, ErrNotificationInput
	}

	notification := &models.Notification{
		UserID:   userID,
		ReportID: reportID,
		Type:     ntype,
		Title:    title,
		Message:  message,
	}
	if err := s.repos.Notification.Create(notification); err != nil {
		return nil, err
	}

	pushSent := false
	if userID != nil {
		if err := s.push.SendPush(*userID, title, message); err != nil {
			log.Printf("push notification failed: %v", err)
		} else {
			pushSent = true
		}
	}

	emailSent := false
	if email != nil && *email != "" {
		if err := s.email.SendEmail(*email, title, message, reportID); err != nil {
			log.Printf("email notification failed: %v", err)
		} else {
			emailSent = true
		}
	}

	if pushSent || emailSent {
		if err := s.repos.Notification.MarkDelivered(notification.ID, pushSent, emailSent); err != nil {
			log.Printf("failed to flag notification delivery: %v", err)
		}
		notification.PushSent = pushSent
		notification.EmailSent = emailSent
	}

	return notification, nil
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	return s.repos.Notification.ListByUserID(userID, unreadOnly)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.repos.Notification.MarkRead(id, userID)
}
