package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/routing"
	"gorm.io/gorm"
)

// routingAuthor names the system actor on routing-generated update rows.
const routingAuthor = "Automated Routing System"

type RoutingService struct {
	repos        *repositories.Repos
	rules        routing.Rules
	hub          *realtime.Hub
	notification *NotificationService
}

func NewRoutingService(repos *repositories.Repos, rules routing.Rules, hub *realtime.Hub, notification *NotificationService) *RoutingService {
	return &RoutingService{repos: repos, rules: rules, hub: hub, notification: notification}
}

// Rules exposes the active rule table.
func (s *RoutingService) Rules() routing.Rules {
	return s.rules
}

// RouteReport assigns a newly submitted report to a department and staff
// member, re-tiers its priority from the urgency score and moves it to
// acknowledged. The report update and field changes commit atomically; on
// store failure the report stays in submitted for manual follow-up. Only
// submitted reports are routable: anything further along its lifecycle
// (including closed or rejected) is refused rather than dragged back to
// acknowledged.
func (s *RoutingService) RouteReport(reportID uint) (routing.Assignment, error) {
	report, err := s.repos.Report.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return routing.Assignment{}, ErrReportNotFound
		}
		return routing.Assignment{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if report.Status != models.ReportStatusSubmitted {
		return routing.Assignment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, report.Status, models.ReportStatusAcknowledged)
	}

	assignment := routing.Resolve(report, s.rules)

	fields := map[string]interface{}{
		"department":  assignment.Department,
		"assigned_to": assignment.Assignee,
		"priority":    assignment.Priority,
		"status":      models.ReportStatusAcknowledged,
	}
	update := &models.ReportUpdate{
		ReportID: report.ID,
		Status:   models.ReportStatusAcknowledged,
		Message: fmt.Sprintf("Report has been acknowledged and assigned to %s. Priority level: %s.",
			assignment.Department, assignment.Priority),
		UpdatedByName: routingAuthor,
		IsPublic:      true,
	}

	if err := s.repos.Report.UpdateWithLog(report.ID, report.Version, fields, update); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return routing.Assignment{}, ErrReportNotFound
		}
		if errors.Is(err, repositories.ErrVersionConflict) {
			return routing.Assignment{}, err
		}
		return routing.Assignment{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logRoutingEvent(report, assignment)

	s.hub.Publish(realtime.Event{
		Type:     realtime.EventUpdate,
		Table:    "reports",
		ReportID: report.ID,
		Row: map[string]interface{}{
			"id":          report.ID,
			"status":      models.ReportStatusAcknowledged,
			"department":  assignment.Department,
			"assigned_to": assignment.Assignee,
			"priority":    assignment.Priority,
		},
	})

	if _, err := s.notification.Notify(
		report.ID,
		report.UserID,
		report.ReporterEmail,
		models.NotificationTypeAssignment,
		"Report acknowledged",
		fmt.Sprintf("Your report %q was assigned to %s.", report.Title, assignment.Department),
	); err != nil {
		log.Printf("routing notification failed: %v", err)
	}

	return assignment, nil
}

func (s *RoutingService) logRoutingEvent(report *models.Report, assignment routing.Assignment) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"original_priority": report.Priority,
		"assigned_priority": assignment.Priority,
		"assignee":          assignment.Assignee,
		"routing_score":     routing.CalculatePriorityScore(report, s.rules),
	})

	audit := &models.AuditLog{
		Action:       "report_routed",
		ResourceType: "report",
		ResourceID:   fmt.Sprintf("%d", report.ID),
		NewData:      metadata,
		Description:  fmt.Sprintf("Routed to %s", assignment.Department),
	}
	if err := s.repos.Audit.CreateAuditLog(audit); err != nil {
		log.Printf("failed to log routing event: %v", err)
	}
}
