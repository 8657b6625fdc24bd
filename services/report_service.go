package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/geocode"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRatingNotAllowed  = errors.New("rating is only accepted for resolved or closed reports")
	ErrValidation        = errors.New("invalid input")
	ErrStore             = errors.New("store operation failed")
)

type ReportService struct {
	repos        *repositories.Repos
	routing      *RoutingService
	notification *NotificationService
	geocoder     geocode.Geocoder
	hub          *realtime.Hub
}

func NewReportService(repos *repositories.Repos, routing *RoutingService, notification *NotificationService, geocoder geocode.Geocoder, hub *realtime.Hub) *ReportService {
	return &ReportService{
		repos:        repos,
		routing:      routing,
		notification: notification,
		geocoder:     geocoder,
		hub:          hub,
	}
}

// CreateReport inserts a submitted report and immediately routes it. A
// routing failure leaves the report in submitted for manual triage; the
// submission itself still succeeds. When no address is supplied the geocoder
// enriches it from coordinates, degrading to raw coordinates on failure.
func (s *ReportService) CreateReport(ctx context.Context, userID *uint, input dto.CreateReportDTO) (*models.Report, error) {
	category := models.ReportCategory(input.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}

	priority := models.ReportPriorityMedium
	if input.Priority != "" {
		priority = models.ReportPriority(input.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
		}
	}

	address := input.LocationAddress
	if address == "" && input.LocationLat != nil && input.LocationLng != nil {
		resolved, err := s.geocoder.ReverseGeocode(ctx, *input.LocationLat, *input.LocationLng)
		if err != nil {
			log.Printf("geocoding failed, falling back to raw coordinates: %v", err)
			resolved, _ = geocode.Offline{}.ReverseGeocode(ctx, *input.LocationLat, *input.LocationLng)
		}
		address = resolved
	}

	report := &models.Report{
		TrackingID:      uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        category,
		Priority:        priority,
		Status:          models.ReportStatusSubmitted,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		LocationAddress: address,
		ReporterName:    input.ReporterName,
		ReporterEmail:   input.ReporterEmail,
		ReporterPhone:   input.ReporterPhone,
		UserID:          userID,
	}

	if err := s.repos.Report.Create(report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.hub.Publish(realtime.Event{
		Type:     realtime.EventInsert,
		Table:    "reports",
		ReportID: report.ID,
		Row:      report,
	})

	if _, err := s.notification.Notify(
		report.ID,
		userID,
		input.ReporterEmail,
		models.NotificationTypeReportSubmitted,
		"Report received",
		fmt.Sprintf("Your report %q was received and is being triaged.", report.Title),
	); err != nil {
		log.Printf("submission notification failed: %v", err)
	}

	// Routing is triggered by creation, not a schedule. A failure here is
	// not surfaced to the citizen.
	if _, err := s.routing.RouteReport(report.ID); err != nil {
		log.Printf("automated routing failed for report %d: %v", report.ID, err)
	} else if refreshed, err := s.repos.Report.FindByID(report.ID); err == nil {
		report = refreshed
	}

	return report, nil
}

func (s *ReportService) GetReport(id uint) (*models.Report, error) {
	report, err := s.repos.Report.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return report, nil
}

// TrackReport resolves a report by its public tracking id, for citizens
// without an account.
func (s *ReportService) TrackReport(trackingID string) (*models.Report, error) {
	if _, err := uuid.Parse(trackingID); err != nil {
		return nil, fmt.Errorf("%w: malformed tracking id", ErrValidation)
	}
	report, err := s.repos.Report.FindByTrackingID(trackingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return report, nil
}

func (s *ReportService) ListReports(filter dto.ReportFilter) ([]models.Report, error) {
	return s.repos.Report.List(filter)
}

// TransitionReport moves a report to a new lifecycle status. The transition
// table forbids re-entering submitted and leaving closed/rejected. Exactly
// one update row is appended per transition; repeating the current status is
// allowed and appends another row.
func (s *ReportService) TransitionReport(reportID uint, actorName string, input dto.TransitionReportDTO) (*models.Report, error) {
	report, err := s.repos.Report.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	target := models.ReportStatus(input.Status)
	if !report.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, report.Status, target)
	}

	message := fmt.Sprintf("Status updated to %s", target)
	if input.Message != nil && *input.Message != "" {
		message = *input.Message
	}

	fields := map[string]interface{}{
		"status": target,
	}
	if input.AssignedTo != nil {
		fields["assigned_to"] = *input.AssignedTo
	}

	update := &models.ReportUpdate{
		ReportID:      report.ID,
		Status:        target,
		Message:       message,
		UpdatedByName: actorName,
		IsPublic:      true,
	}

	if err := s.repos.Report.UpdateWithLog(report.ID, report.Version, fields, update); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	report.Status = target
	if input.AssignedTo != nil {
		report.AssignedTo = input.AssignedTo
	}
	report.Version++
	report.UpdatedAt = time.Now()

	s.hub.Publish(realtime.Event{
		Type:     realtime.EventUpdate,
		Table:    "reports",
		ReportID: report.ID,
		Row:      report,
	})

	s.notifyTransition(report, target, message)

	return report, nil
}

func (s *ReportService) notifyTransition(report *models.Report, target models.ReportStatus, message string) {
	ntype := models.NotificationTypeStatusUpdate
	title := "Report status updated"
	if target == models.ReportStatusResolved {
		ntype = models.NotificationTypeResolution
		title = "Report resolved"
	}

	if _, err := s.notification.Notify(report.ID, report.UserID, report.ReporterEmail, ntype, title, message); err != nil {
		log.Printf("transition notification failed: %v", err)
	}

	if target == models.ReportStatusResolved {
		if _, err := s.notification.Notify(
			report.ID,
			report.UserID,
			report.ReporterEmail,
			models.NotificationTypeFeedbackRequest,
			"How did we do?",
			fmt.Sprintf("Your report %q was resolved. Rate the resolution to help us improve.", report.Title),
		); err != nil {
			log.Printf("feedback request notification failed: %v", err)
		}
	}
}

// RateReport records citizen satisfaction. Only resolved or closed reports
// accept ratings.
func (s *ReportService) RateReport(reportID uint, input dto.RateReportDTO) (*models.Report, error) {
	report, err := s.repos.Report.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if !report.Status.AcceptsRating() {
		return nil, ErrRatingNotAllowed
	}

	fields := map[string]interface{}{
		"citizen_rating": input.Rating,
	}
	if input.Feedback != nil {
		fields["citizen_feedback"] = *input.Feedback
	}

	if err := s.repos.Report.UpdateFields(report.ID, report.Version, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	report.CitizenRating = &input.Rating
	report.CitizenFeedback = input.Feedback
	report.Version++
	return report, nil
}

// ListReportUpdates returns the status-update log newest-first. Citizens only
// see public entries.
func (s *ReportService) ListReportUpdates(reportID uint, publicOnly bool) ([]models.ReportUpdate, error) {
	return s.repos.ReportUpdate.ListByReportID(reportID, publicOnly)
}
