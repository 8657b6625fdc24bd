package handlers

import (
	"net/http"

	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

type RoutingHandler struct {
	service *services.RoutingService
}

func NewRoutingHandler(service *services.RoutingService) *RoutingHandler {
	return &RoutingHandler{service: service}
}

// RouteReport re-runs automated routing for a report. Normally routing fires
// on creation; this endpoint lets staff retry reports stuck in submitted
// after a routing failure.
func (h *RoutingHandler) RouteReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := h.service.RouteReport(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: response.RoutingResponse{
		Department: assignment.Department,
		Assignee:   assignment.Assignee,
		Priority:   string(assignment.Priority),
	}})
}
