package handlers

import (
	"log"
	"net/http"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard queries degrade to empty rollups on store failure rather than
// breaking the whole admin view.

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.service.Overview(query)
	if err != nil {
		log.Printf("overview analytics failed: %v", err)
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: stats})
}

func (h *AnalyticsHandler) DepartmentPerformance(c *gin.Context) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.service.DepartmentPerformance(query)
	if err != nil {
		log.Printf("department analytics failed: %v", err)
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: stats})
}

func (h *AnalyticsHandler) TrendingIssues(c *gin.Context) {
	var query dto.TrendingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	trends, err := h.service.TrendingIssues(query.Days)
	if err != nil {
		log.Printf("trending analytics failed: %v", err)
		trends = []dto.CategoryTrend{}
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: trends})
}

func (h *AnalyticsHandler) CitizenSatisfaction(c *gin.Context) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.service.CitizenSatisfaction(query)
	if err != nil {
		log.Printf("satisfaction analytics failed: %v", err)
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: stats})
}
