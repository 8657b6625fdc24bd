package dto

import "time"

type AnalyticsQuery struct {
	Start *time.Time `form:"start" time_format:"2006-01-02"`
	End   *time.Time `form:"end" time_format:"2006-01-02"`
}

type TrendingQuery struct {
	Days int `form:"days"`
}

type OverviewStats struct {
	TotalReports      int            `json:"total_reports"`
	StatusCounts      map[string]int `json:"status_counts"`
	PriorityCounts    map[string]int `json:"priority_counts"`
	CategoryCounts    map[string]int `json:"category_counts"`
	ResolutionRate    float64        `json:"resolution_rate"`
	AvgResolutionDays float64        `json:"avg_resolution_days"`
}

type DepartmentStats struct {
	Total             int     `json:"total"`
	Resolved          int     `json:"resolved"`
	ResolutionRate    float64 `json:"resolution_rate"`
	AvgResolutionDays float64 `json:"avg_resolution_days"`
}

type TrendingSample struct {
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Date     time.Time `json:"date"`
}

type CategoryTrend struct {
	Category      string           `json:"category"`
	Count         int              `json:"count"`
	RecentReports []TrendingSample `json:"recent_reports"`
}

type SatisfactionStats struct {
	TotalRatings       int                `json:"total_ratings"`
	AvgRating          float64            `json:"avg_rating"`
	RatingDistribution map[int]int        `json:"rating_distribution"`
	DepartmentRatings  map[string]float64 `json:"department_ratings"`
}
