package services

import (
	"testing"

	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/repositories/mock_repositories"
	"github.com/civicseva/civicseva-api/routing"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type routingServiceMocks struct {
	report *mock_repositories.MockReportRepo
	notif  *mock_repositories.MockNotificationRepo
	audit  *mock_repositories.MockAuditRepo
	hub    *realtime.Hub
}

// --------------------- Setup ---------------------
func setupRoutingServiceMocks(t *testing.T) (*RoutingService, routingServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mocks := routingServiceMocks{
		report: mock_repositories.NewMockReportRepo(ctrl),
		notif:  mock_repositories.NewMockNotificationRepo(ctrl),
		audit:  mock_repositories.NewMockAuditRepo(ctrl),
		hub:    realtime.NewHub(),
	}
	repos := &repositories.Repos{
		Report:       mocks.report,
		Notification: mocks.notif,
		Audit:        mocks.audit,
	}

	notification := NewNotificationService(repos, LogPushSender{}, LogEmailSender{})
	svc := NewRoutingService(repos, routing.DefaultRules(), mocks.hub, notification)
	return svc, mocks
}

// --------------------- RouteReport ---------------------
func TestRouteReport_AssignsAndAcknowledges(t *testing.T) {
	svc, mocks := setupRoutingServiceMocks(t)

	report := &models.Report{
		ID:       1,
		Title:    "Water main burst",
		Category: models.ReportCategoryWater,
		Priority: models.ReportPriorityHigh,
		Status:   models.ReportStatusSubmitted,
		Version:  1,
	}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(1), gomock.Any(), gomock.Any()).
		DoAndReturn(func(id, version uint, fields map[string]interface{}, update *models.ReportUpdate) error {
			assert.Equal(t, "Water Department", fields["department"])
			assert.Equal(t, "Lisa Chen - Water Department", fields["assigned_to"])
			assert.Equal(t, models.ReportStatusAcknowledged, fields["status"])
			// 3 * 2.0 = 6.0 -> high
			assert.Equal(t, models.ReportPriorityHigh, fields["priority"])

			assert.Equal(t, models.ReportStatusAcknowledged, update.Status)
			assert.Equal(t, "Automated Routing System", update.UpdatedByName)
			assert.Contains(t, update.Message, "Water Department")
			assert.Contains(t, update.Message, "high")
			return nil
		})
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).DoAndReturn(func(a *models.AuditLog) error {
		assert.Equal(t, "report_routed", a.Action)
		assert.Equal(t, "report", a.ResourceType)
		return nil
	})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil)

	sub := mocks.hub.Subscribe(1)
	defer mocks.hub.Unsubscribe(sub)

	assignment, err := svc.RouteReport(1)
	require.NoError(t, err)
	assert.Equal(t, "Water Department", assignment.Department)
	assert.Equal(t, models.ReportPriorityHigh, assignment.Priority)

	event := <-sub.C
	assert.Equal(t, realtime.EventUpdate, event.Type)
	assert.Equal(t, "reports", event.Table)
}

func TestRouteReport_FallbackForUnmatchedCategory(t *testing.T) {
	svc, mocks := setupRoutingServiceMocks(t)

	report := &models.Report{
		ID:       2,
		Title:    "Something odd",
		Category: models.ReportCategoryOther,
		Priority: models.ReportPriorityMedium,
		Status:   models.ReportStatusSubmitted,
		Version:  1,
	}
	mocks.report.EXPECT().FindByID(uint(2)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(2), uint(1), gomock.Any(), gomock.Any()).
		DoAndReturn(func(id, version uint, fields map[string]interface{}, update *models.ReportUpdate) error {
			assert.Equal(t, "General", fields["department"])
			assert.Equal(t, "General Admin", fields["assigned_to"])
			assert.Equal(t, models.ReportPriorityMedium, fields["priority"])
			return nil
		})
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil)

	assignment, err := svc.RouteReport(2)
	require.NoError(t, err)
	assert.Equal(t, "General", assignment.Department)
	assert.Equal(t, "General Admin", assignment.Assignee)
}

func TestRouteReport_OnlySubmittedReportsAreRoutable(t *testing.T) {
	statuses := []models.ReportStatus{
		models.ReportStatusAcknowledged,
		models.ReportStatusInProgress,
		models.ReportStatusResolved,
		models.ReportStatusClosed,
		models.ReportStatusRejected,
	}
	for _, status := range statuses {
		svc, mocks := setupRoutingServiceMocks(t)

		// No UpdateWithLog expectation: routing a non-submitted report must
		// not touch the row.
		mocks.report.EXPECT().FindByID(uint(3)).Return(&models.Report{
			ID:       3,
			Category: models.ReportCategoryWater,
			Priority: models.ReportPriorityHigh,
			Status:   status,
			Version:  2,
		}, nil)

		_, err := svc.RouteReport(3)
		assert.ErrorIs(t, err, ErrInvalidTransition, string(status))
	}
}

func TestRouteReport_NotFound(t *testing.T) {
	svc, mocks := setupRoutingServiceMocks(t)

	mocks.report.EXPECT().FindByID(uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RouteReport(9)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestRouteReport_VersionConflictSurfaces(t *testing.T) {
	svc, mocks := setupRoutingServiceMocks(t)

	report := &models.Report{
		ID:       1,
		Category: models.ReportCategoryRoads,
		Priority: models.ReportPriorityMedium,
		Status:   models.ReportStatusSubmitted,
		Version:  1,
	}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(1), gomock.Any(), gomock.Any()).
		Return(repositories.ErrVersionConflict)

	_, err := svc.RouteReport(1)
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)
}
