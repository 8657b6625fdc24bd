package handlers

import (
	"net/http"

	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/civicseva/civicseva-api/utils"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.service.ListForUser(uid, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.service.MarkRead(id, uid); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "marked read"})
}
