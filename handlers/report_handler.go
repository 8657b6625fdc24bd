package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/civicseva/civicseva-api/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.ReportService
	audit   repositories.AuditRepo
}

func NewReportHandler(service *services.ReportService, audit repositories.AuditRepo) *ReportHandler {
	return &ReportHandler{service: service, audit: audit}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound), errors.Is(err, services.ErrAttachmentNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrRatingNotAllowed):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, repositories.ErrVersionConflict):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var input dto.CreateReportDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	// Anonymous submissions are allowed; claims enrich the report when present.
	var userID *uint
	if uid, err := utils.GetUserIDFromContext(c); err == nil {
		userID = &uid
	}

	report, err := h.service.CreateReport(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "report", strconv.FormatUint(uint64(report.ID), 10), nil, report, "Report submitted", h.audit)

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: report})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.service.GetReport(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: report})
}

func (h *ReportHandler) TrackReport(c *gin.Context) {
	report, err := h.service.TrackReport(c.Param("tracking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: report})
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	reports, err := h.service.ListReports(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: reports})
}

func (h *ReportHandler) TransitionReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input dto.TransitionReportDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actorName := "Municipal Staff"
	if claims, err := utils.GetClaimsFromContext(c); err == nil {
		actorName = claims.Username
	}

	report, err := h.service.TransitionReport(id, actorName, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "transition", "report", c.Param("id"), nil, report, "Status changed to "+input.Status, h.audit)

	c.JSON(http.StatusOK, response.SuccessResponse{Data: report})
}

func (h *ReportHandler) RateReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input dto.RateReportDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	report, err := h.service.RateReport(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: report})
}

func (h *ReportHandler) ListReportUpdates(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Staff see internal entries too; citizens only public ones.
	publicOnly := true
	if claims, err := utils.GetClaimsFromContext(c); err == nil {
		if claims.Role == "staff" || claims.Role == "admin" {
			publicOnly = false
		}
	}

	updates, err := h.service.ListReportUpdates(id, publicOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: updates})
}
