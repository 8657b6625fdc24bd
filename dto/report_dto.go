package dto

import "time"

type CreateReportDTO struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required,oneof=roads lighting sanitation water parks safety noise other"`
	Priority        string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	LocationAddress string   `json:"location_address"`
	ReporterName    *string  `json:"reporter_name"`
	ReporterEmail   *string  `json:"reporter_email"`
	ReporterPhone   *string  `json:"reporter_phone"`
}

type TransitionReportDTO struct {
	Status     string  `json:"status" binding:"required,oneof=acknowledged in_progress resolved closed rejected"`
	Message    *string `json:"message"`
	AssignedTo *string `json:"assigned_to"`
}

type RateReportDTO struct {
	Rating   int     `json:"rating" binding:"required,min=1,max=5"`
	Feedback *string `json:"feedback"`
}

type ReportFilter struct {
	Status     *string    `form:"status" binding:"omitempty,oneof=submitted acknowledged in_progress resolved closed rejected"`
	Category   *string    `form:"category" binding:"omitempty,oneof=roads lighting sanitation water parks safety noise other"`
	Priority   *string    `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Department *string    `form:"department"`
	Start      *time.Time `form:"start" time_format:"2006-01-02"`
	End        *time.Time `form:"end" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}
