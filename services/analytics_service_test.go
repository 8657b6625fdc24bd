package services

import (
	"testing"
	"time"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/repositories/mock_repositories"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsServiceMocks struct {
	report *mock_repositories.MockReportRepo
	audit  *mock_repositories.MockAuditRepo
}

// --------------------- Setup ---------------------
func setupAnalyticsServiceMocks(t *testing.T) (*AnalyticsService, analyticsServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mocks := analyticsServiceMocks{
		report: mock_repositories.NewMockReportRepo(ctrl),
		audit:  mock_repositories.NewMockAuditRepo(ctrl),
	}
	repos := &repositories.Repos{
		Report: mocks.report,
		Audit:  mocks.audit,
	}
	return NewAnalyticsService(repos), mocks
}

func reportWith(status models.ReportStatus, category models.ReportCategory, dept string, resolutionDays float64) models.Report {
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	r := models.Report{
		Status:    status,
		Category:  category,
		Priority:  models.ReportPriorityMedium,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Duration(resolutionDays * 24 * float64(time.Hour))),
	}
	if dept != "" {
		r.Department = &dept
	}
	return r
}

// --------------------- Overview ---------------------
func TestOverview_Rollups(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	reports := []models.Report{
		reportWith(models.ReportStatusResolved, models.ReportCategoryWater, "Water Department", 2),
		reportWith(models.ReportStatusClosed, models.ReportCategoryWater, "Water Department", 4),
		reportWith(models.ReportStatusSubmitted, models.ReportCategoryRoads, "", 0),
		reportWith(models.ReportStatusInProgress, models.ReportCategoryParks, "Parks", 0),
	}
	mocks.report.EXPECT().ListBetween(nil, nil).Return(reports, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	stats, err := svc.Overview(dto.AnalyticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalReports)
	assert.Equal(t, 2, stats.CategoryCounts["water"])
	assert.Equal(t, 1, stats.StatusCounts["resolved"])
	assert.Equal(t, 1, stats.StatusCounts["closed"])
	assert.Equal(t, 50.0, stats.ResolutionRate)
	assert.Equal(t, 3.0, stats.AvgResolutionDays)
}

func TestOverview_EmptyStore(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	mocks.report.EXPECT().ListBetween(nil, nil).Return(nil, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	stats, err := svc.Overview(dto.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalReports)
	assert.Equal(t, 0.0, stats.ResolutionRate)
	assert.Equal(t, 0.0, stats.AvgResolutionDays)
}

// --------------------- DepartmentPerformance ---------------------
func TestDepartmentPerformance_GroupsWithUnknown(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	reports := []models.Report{
		reportWith(models.ReportStatusResolved, models.ReportCategoryWater, "Water Department", 2),
		reportWith(models.ReportStatusInProgress, models.ReportCategoryWater, "Water Department", 0),
		reportWith(models.ReportStatusSubmitted, models.ReportCategoryRoads, "", 0),
	}
	mocks.report.EXPECT().ListBetween(nil, nil).Return(reports, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	stats, err := svc.DepartmentPerformance(dto.AnalyticsQuery{})
	require.NoError(t, err)

	water := stats["Water Department"]
	assert.Equal(t, 2, water.Total)
	assert.Equal(t, 1, water.Resolved)
	assert.Equal(t, 50.0, water.ResolutionRate)
	assert.Equal(t, 2.0, water.AvgResolutionDays)

	unknown := stats["Unknown"]
	assert.Equal(t, 1, unknown.Total)
	assert.Equal(t, 0, unknown.Resolved)
}

// --------------------- TrendingIssues ---------------------
func TestTrendingIssues_RanksByCount(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	now := time.Now()
	var reports []models.Report
	for i := 0; i < 7; i++ {
		reports = append(reports, models.Report{
			Title:     "Pothole",
			Category:  models.ReportCategoryRoads,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	for i := 0; i < 3; i++ {
		reports = append(reports, models.Report{
			Title:     "Streetlight out",
			Category:  models.ReportCategoryLighting,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	mocks.report.EXPECT().ListBetween(gomock.Any(), nil).Return(reports, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	trends, err := svc.TrendingIssues(30)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, "roads", trends[0].Category)
	assert.Equal(t, 7, trends[0].Count)
	// Samples are capped at five, newest first.
	assert.Len(t, trends[0].RecentReports, 5)
	assert.Equal(t, "lighting", trends[1].Category)
}

func TestTrendingIssues_TieBrokenByName(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	reports := []models.Report{
		{Title: "a", Category: models.ReportCategoryWater, CreatedAt: time.Now()},
		{Title: "b", Category: models.ReportCategoryParks, CreatedAt: time.Now()},
	}
	mocks.report.EXPECT().ListBetween(gomock.Any(), nil).Return(reports, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	trends, err := svc.TrendingIssues(0)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "parks", trends[0].Category)
	assert.Equal(t, "water", trends[1].Category)
}

// --------------------- CitizenSatisfaction ---------------------
func TestCitizenSatisfaction_Aggregates(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	rated := func(rating int, dept string) models.Report {
		r := reportWith(models.ReportStatusResolved, models.ReportCategoryWater, dept, 1)
		r.CitizenRating = &rating
		return r
	}
	reports := []models.Report{
		rated(5, "Water Department"),
		rated(4, "Water Department"),
		rated(2, ""),
		reportWith(models.ReportStatusResolved, models.ReportCategoryRoads, "Public Works", 1),
	}
	mocks.report.EXPECT().ListBetween(nil, nil).Return(reports, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	stats, err := svc.CitizenSatisfaction(dto.AnalyticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRatings)
	assert.Equal(t, 3.7, stats.AvgRating)
	assert.Equal(t, 1, stats.RatingDistribution[5])
	assert.Equal(t, 1, stats.RatingDistribution[2])
	assert.Equal(t, 4.5, stats.DepartmentRatings["Water Department"])
	assert.Equal(t, 2.0, stats.DepartmentRatings["Unknown"])
}

// --------------------- Audit degradation ---------------------
func TestOverview_AuditFailureDoesNotFailQuery(t *testing.T) {
	svc, mocks := setupAnalyticsServiceMocks(t)

	mocks.report.EXPECT().ListBetween(nil, nil).Return(nil, nil)
	mocks.audit.EXPECT().CreateAuditLog(gomock.Any()).Return(assert.AnError)

	_, err := svc.Overview(dto.AnalyticsQuery{})
	assert.NoError(t, err)
}
