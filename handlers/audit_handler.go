package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var params repositories.AuditQueryParams

	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			params.UserID = &uid
		}
	}
	if v := c.Query("resource_type"); v != "" {
		params.ResourceType = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.StartTime = &t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.EndTime = &t
		}
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.service.QueryAuditLogs(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: logs})
}
