package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/repositories"
)

const trendingSampleLimit = 5
const trendingCategoryLimit = 10

type AnalyticsService struct {
	repos *repositories.Repos
}

func NewAnalyticsService(repos *repositories.Repos) *AnalyticsService {
	return &AnalyticsService{repos: repos}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isResolved(status models.ReportStatus) bool {
	return status == models.ReportStatusResolved || status == models.ReportStatusClosed
}

// Overview computes dashboard rollups over the optional date range: total,
// per-status/priority/category counts, resolution rate (percent, one
// decimal) and average resolution time in days over resolved/closed reports.
func (s *AnalyticsService) Overview(query dto.AnalyticsQuery) (dto.OverviewStats, error) {
	stats := dto.OverviewStats{
		StatusCounts:   map[string]int{},
		PriorityCounts: map[string]int{},
		CategoryCounts: map[string]int{},
	}

	reports, err := s.repos.Report.ListBetween(query.Start, query.End)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStore, err)
	}

	stats.TotalReports = len(reports)

	resolvedCount := 0
	var resolutionDays float64
	for _, r := range reports {
		stats.StatusCounts[string(r.Status)]++
		stats.PriorityCounts[string(r.Priority)]++
		stats.CategoryCounts[string(r.Category)]++

		if isResolved(r.Status) {
			resolvedCount++
			resolutionDays += r.UpdatedAt.Sub(r.CreatedAt).Hours() / 24
		}
	}

	if stats.TotalReports > 0 {
		stats.ResolutionRate = round1(float64(resolvedCount) / float64(stats.TotalReports) * 100)
	}
	if resolvedCount > 0 {
		stats.AvgResolutionDays = round1(resolutionDays / float64(resolvedCount))
	}

	s.logQuery("overview", query)
	return stats, nil
}

// DepartmentPerformance groups the overview computation by department.
// Unrouted reports land under "Unknown".
func (s *AnalyticsService) DepartmentPerformance(query dto.AnalyticsQuery) (map[string]dto.DepartmentStats, error) {
	reports, err := s.repos.Report.ListBetween(query.Start, query.End)
	if err != nil {
		return map[string]dto.DepartmentStats{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	type acc struct {
		total    int
		resolved int
		days     float64
	}
	byDept := map[string]*acc{}
	for _, r := range reports {
		dept := "Unknown"
		if r.Department != nil && *r.Department != "" {
			dept = *r.Department
		}
		a, ok := byDept[dept]
		if !ok {
			a = &acc{}
			byDept[dept] = a
		}
		a.total++
		if isResolved(r.Status) {
			a.resolved++
			a.days += r.UpdatedAt.Sub(r.CreatedAt).Hours() / 24
		}
	}

	result := make(map[string]dto.DepartmentStats, len(byDept))
	for dept, a := range byDept {
		stats := dto.DepartmentStats{Total: a.total, Resolved: a.resolved}
		if a.total > 0 {
			stats.ResolutionRate = round1(float64(a.resolved) / float64(a.total) * 100)
		}
		if a.resolved > 0 {
			stats.AvgResolutionDays = round1(a.days / float64(a.resolved))
		}
		result[dept] = stats
	}

	s.logQuery("department_performance", query)
	return result, nil
}

// TrendingIssues ranks the last N days of reports by category count, each
// with up to five most-recent samples.
func (s *AnalyticsService) TrendingIssues(days int) ([]dto.CategoryTrend, error) {
	if days <= 0 {
		days = 30
	}
	start := time.Now().AddDate(0, 0, -days)

	reports, err := s.repos.Report.ListBetween(&start, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	byCategory := map[string][]models.Report{}
	for _, r := range reports {
		category := string(r.Category)
		if category == "" {
			category = string(models.ReportCategoryOther)
		}
		byCategory[category] = append(byCategory[category], r)
	}

	trends := make([]dto.CategoryTrend, 0, len(byCategory))
	for category, group := range byCategory {
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})

		samples := make([]dto.TrendingSample, 0, trendingSampleLimit)
		for _, r := range group {
			if len(samples) == trendingSampleLimit {
				break
			}
			samples = append(samples, dto.TrendingSample{
				Title:    r.Title,
				Location: r.LocationAddress,
				Date:     r.CreatedAt,
			})
		}

		trends = append(trends, dto.CategoryTrend{
			Category:      category,
			Count:         len(group),
			RecentReports: samples,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Count != trends[j].Count {
			return trends[i].Count > trends[j].Count
		}
		return trends[i].Category < trends[j].Category
	})
	if len(trends) > trendingCategoryLimit {
		trends = trends[:trendingCategoryLimit]
	}

	s.logQuery("trending_issues", dto.AnalyticsQuery{Start: &start})
	return trends, nil
}

// CitizenSatisfaction aggregates ratings over reports that have one.
func (s *AnalyticsService) CitizenSatisfaction(query dto.AnalyticsQuery) (dto.SatisfactionStats, error) {
	stats := dto.SatisfactionStats{
		RatingDistribution: map[int]int{},
		DepartmentRatings:  map[string]float64{},
	}

	reports, err := s.repos.Report.ListBetween(query.Start, query.End)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStore, err)
	}

	type acc struct {
		total int
		sum   int
	}
	byDept := map[string]*acc{}
	sum := 0
	for _, r := range reports {
		if r.CitizenRating == nil {
			continue
		}
		rating := *r.CitizenRating
		stats.TotalRatings++
		sum += rating
		stats.RatingDistribution[rating]++

		dept := "Unknown"
		if r.Department != nil && *r.Department != "" {
			dept = *r.Department
		}
		a, ok := byDept[dept]
		if !ok {
			a = &acc{}
			byDept[dept] = a
		}
		a.total++
		a.sum += rating
	}

	if stats.TotalRatings > 0 {
		stats.AvgRating = round1(float64(sum) / float64(stats.TotalRatings))
	}
	for dept, a := range byDept {
		stats.DepartmentRatings[dept] = round1(float64(a.sum) / float64(a.total))
	}

	s.logQuery("citizen_satisfaction", query)
	return stats, nil
}

// logQuery writes the audit entry every analytics read carries. Failures are
// logged and never fail the query.
func (s *AnalyticsService) logQuery(kind string, query dto.AnalyticsQuery) {
	description := kind
	if query.Start != nil {
		description += " from " + query.Start.Format("2006-01-02")
	}
	if query.End != nil {
		description += " to " + query.End.Format("2006-01-02")
	}

	audit := &models.AuditLog{
		Action:       "analytics_query",
		ResourceType: "analytics",
		ResourceID:   kind,
		Description:  description,
	}
	if err := s.repos.Audit.CreateAuditLog(audit); err != nil {
		log.Printf("failed to log analytics query: %v", err)
	}
}
