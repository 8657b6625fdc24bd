package services

import (
	"context"
	"errors"
	"testing"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/geocode"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/repositories/mock_repositories"
	"github.com/civicseva/civicseva-api/routing"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptrString(s string) *string { return &s }

func ptrFloat(f float64) *float64 { return &f }

type reportServiceMocks struct {
	report *mock_repositories.MockReportRepo
	update *mock_repositories.MockReportUpdateRepo
	notif  *mock_repositories.MockNotificationRepo
	audit  *mock_repositories.MockAuditRepo
}

// --------------------- Setup ---------------------
func setupReportServiceMocks(t *testing.T, geocoder geocode.Geocoder) (*ReportService, reportServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mocks := reportServiceMocks{
		report: mock_repositories.NewMockReportRepo(ctrl),
		update: mock_repositories.NewMockReportUpdateRepo(ctrl),
		notif:  mock_repositories.NewMockNotificationRepo(ctrl),
		audit:  mock_repositories.NewMockAuditRepo(ctrl),
	}
	repos := &repositories.Repos{
		Report:       mocks.report,
		ReportUpdate: mocks.update,
		Notification: mocks.notif,
		Audit:        mocks.audit,
	}

	hub := realtime.NewHub()
	notification := NewNotificationService(repos, LogPushSender{}, LogEmailSender{})
	routingSvc := NewRoutingService(repos, routing.DefaultRules(), hub, notification)
	svc := NewReportService(repos, routingSvc, notification, geocoder, hub)
	return svc, mocks
}

// --------------------- CreateReport ---------------------
func TestCreateReport_RoutesOnSubmit(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	mocks.report.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Report) error {
		assert.Equal(t, models.ReportStatusSubmitted, r.Status)
		assert.NotEqual(t, uuid.Nil, r.TrackingID)
		r.ID = 1
		r.Version = 1
		return nil
	})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil).AnyTimes()

	submitted := &models.Report{
		ID:       1,
		Title:    "Burst pipe",
		Category: models.ReportCategoryWater,
		Priority: models.ReportPriorityHigh,
		Status:   models.ReportStatusSubmitted,
		Version:  1,
	}
	dept := "Water Department"
	routed := &models.Report{
		ID:         1,
		Title:      "Burst pipe",
		Category:   models.ReportCategoryWater,
		Priority:   models.ReportPriorityHigh,
		Status:     models.ReportStatusAcknowledged,
		Department: &dept,
		Version:    2,
	}
	mocks.report.EXPECT().FindByID(uint(1)).Return(submitted, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(1), gomock.Any(), gomock.Any()).Return(nil)
	mocks.report.EXPECT().FindByID(uint(1)).Return(routed, nil)

	got, err := svc.CreateReport(context.Background(), nil, dto.CreateReportDTO{
		Title:    "Burst pipe",
		Category: "water",
		Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusAcknowledged, got.Status)
	assert.Equal(t, "Water Department", *got.Department)
}

func TestCreateReport_UnknownCategory(t *testing.T) {
	svc, _ := setupReportServiceMocks(t, geocode.Offline{})

	_, err := svc.CreateReport(context.Background(), nil, dto.CreateReportDTO{
		Title:    "Strange",
		Category: "potholes",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReport_RoutingFailureLeavesSubmitted(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	mocks.report.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Report) error {
		r.ID = 5
		r.Version = 1
		return nil
	})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	// Routing lookup blows up; submission still succeeds.
	mocks.report.EXPECT().FindByID(uint(5)).Return(nil, errors.New("db down"))

	got, err := svc.CreateReport(context.Background(), nil, dto.CreateReportDTO{
		Title:    "Overflowing bin",
		Category: "sanitation",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusSubmitted, got.Status)
}

type failingGeocoder struct{}

func (failingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	return "", errors.New("upstream timeout")
}

func TestCreateReport_GeocoderFallsBackToCoordinates(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, failingGeocoder{})

	var created *models.Report
	mocks.report.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Report) error {
		created = r
		r.ID = 2
		r.Version = 1
		return nil
	})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil).AnyTimes()
	mocks.report.EXPECT().FindByID(uint(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateReport(context.Background(), nil, dto.CreateReportDTO{
		Title:       "Dark street",
		Category:    "lighting",
		LocationLat: ptrFloat(12.97160),
		LocationLng: ptrFloat(77.59457),
	})
	require.NoError(t, err)
	assert.Equal(t, "12.97160, 77.59457", created.LocationAddress)
}

func TestCreateReport_SuppliedAddressSkipsGeocoder(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, failingGeocoder{})

	var created *models.Report
	mocks.report.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Report) error {
		created = r
		r.ID = 3
		return nil
	})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	mocks.report.EXPECT().FindByID(uint(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateReport(context.Background(), nil, dto.CreateReportDTO{
		Title:           "Dark street",
		Category:        "lighting",
		LocationAddress: "12 Main St",
		LocationLat:     ptrFloat(12.0),
		LocationLng:     ptrFloat(77.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "12 Main St", created.LocationAddress)
}

// --------------------- GetReport / TrackReport ---------------------
func TestGetReport_NotFound(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	mocks.report.EXPECT().FindByID(uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetReport(9)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestTrackReport_MalformedID(t *testing.T) {
	svc, _ := setupReportServiceMocks(t, geocode.Offline{})

	_, err := svc.TrackReport("not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrackReport_Success(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	trackingID := uuid.New()
	mocks.report.EXPECT().FindByTrackingID(trackingID.String()).
		Return(&models.Report{ID: 4, TrackingID: trackingID}, nil)

	got, err := svc.TrackReport(trackingID.String())
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.ID)
}

// --------------------- TransitionReport ---------------------
func TestTransitionReport_Success(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	report := &models.Report{
		ID:      1,
		Title:   "Pothole",
		Status:  models.ReportStatusAcknowledged,
		Version: 3,
	}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(3), gomock.Any(), gomock.Any()).
		DoAndReturn(func(id, version uint, fields map[string]interface{}, update *models.ReportUpdate) error {
			assert.Equal(t, models.ReportStatusInProgress, fields["status"])
			assert.Equal(t, models.ReportStatusInProgress, update.Status)
			assert.Equal(t, "inspector.raj", update.UpdatedByName)
			assert.True(t, update.IsPublic)
			return nil
		})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()

	got, err := svc.TransitionReport(1, "inspector.raj", dto.TransitionReportDTO{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusInProgress, got.Status)
	assert.Equal(t, uint(4), got.Version)
}

func TestTransitionReport_CustomMessageAndAssignee(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	report := &models.Report{ID: 1, Status: models.ReportStatusInProgress, Version: 2}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(2), gomock.Any(), gomock.Any()).
		DoAndReturn(func(id, version uint, fields map[string]interface{}, update *models.ReportUpdate) error {
			assert.Equal(t, "Crew dispatched", update.Message)
			assert.Equal(t, "field-crew-2", fields["assigned_to"])
			return nil
		})
	mocks.notif.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()

	got, err := svc.TransitionReport(1, "dispatch", dto.TransitionReportDTO{
		Status:     "in_progress",
		Message:    ptrString("Crew dispatched"),
		AssignedTo: ptrString("field-crew-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "field-crew-2", *got.AssignedTo)
}

func TestTransitionReport_TerminalStateRefused(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	mocks.report.EXPECT().FindByID(uint(1)).
		Return(&models.Report{ID: 1, Status: models.ReportStatusClosed, Version: 5}, nil)

	_, err := svc.TransitionReport(1, "staff", dto.TransitionReportDTO{Status: "in_progress"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionReport_VersionConflict(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	report := &models.Report{ID: 1, Status: models.ReportStatusAcknowledged, Version: 3}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(3), gomock.Any(), gomock.Any()).
		Return(repositories.ErrVersionConflict)

	_, err := svc.TransitionReport(1, "staff", dto.TransitionReportDTO{Status: "resolved"})
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)
}

func TestTransitionReport_ResolvedSendsFeedbackRequest(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	uid := uint(9)
	report := &models.Report{ID: 1, Title: "Pothole", Status: models.ReportStatusInProgress, Version: 1, UserID: &uid}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateWithLog(uint(1), uint(1), gomock.Any(), gomock.Any()).Return(nil)

	var types []models.NotificationType
	mocks.notif.EXPECT().Create(gomock.Any()).DoAndReturn(func(n *models.Notification) error {
		types = append(types, n.Type)
		n.ID = uint(len(types))
		return nil
	}).Times(2)
	mocks.notif.EXPECT().MarkDelivered(gomock.Any(), true, false).Return(nil).Times(2)

	_, err := svc.TransitionReport(1, "staff", dto.TransitionReportDTO{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, []models.NotificationType{
		models.NotificationTypeResolution,
		models.NotificationTypeFeedbackRequest,
	}, types)
}

// --------------------- RateReport ---------------------
func TestRateReport_Success(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	report := &models.Report{ID: 1, Status: models.ReportStatusResolved, Version: 4}
	mocks.report.EXPECT().FindByID(uint(1)).Return(report, nil)
	mocks.report.EXPECT().UpdateFields(uint(1), uint(4), gomock.Any()).
		DoAndReturn(func(id, version uint, fields map[string]interface{}) error {
			assert.Equal(t, 5, fields["citizen_rating"])
			assert.Equal(t, "Quick fix, thanks", fields["citizen_feedback"])
			return nil
		})

	got, err := svc.RateReport(1, dto.RateReportDTO{Rating: 5, Feedback: ptrString("Quick fix, thanks")})
	require.NoError(t, err)
	assert.Equal(t, 5, *got.CitizenRating)
}

func TestRateReport_NotAllowedBeforeResolution(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	mocks.report.EXPECT().FindByID(uint(1)).
		Return(&models.Report{ID: 1, Status: models.ReportStatusInProgress}, nil)

	_, err := svc.RateReport(1, dto.RateReportDTO{Rating: 4})
	assert.ErrorIs(t, err, ErrRatingNotAllowed)
}

// --------------------- ListReportUpdates ---------------------
func TestListReportUpdates_PublicFilter(t *testing.T) {
	svc, mocks := setupReportServiceMocks(t, geocode.Offline{})

	updates := []models.ReportUpdate{{ID: 1, ReportID: 7, IsPublic: true}}
	mocks.update.EXPECT().ListByReportID(uint(7), true).Return(updates, nil)

	got, err := svc.ListReportUpdates(7, true)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
