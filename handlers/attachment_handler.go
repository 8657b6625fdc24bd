package handlers

import (
	"net/http"

	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

type createAttachmentInput struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
}

func (h *AttachmentHandler) CreateUploadURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input createAttachmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	attachment, uploadURL, err := h.service.CreateUploadURL(c.Request.Context(), id, input.FileName, input.ContentType, input.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: gin.H{
		"attachment": attachment,
		"upload_url": uploadURL,
	}})
}

func (h *AttachmentHandler) ListByReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	attachments, err := h.service.ListByReport(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: attachments})
}

func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	downloadURL, err := h.service.DownloadURL(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: gin.H{"download_url": downloadURL}})
}
