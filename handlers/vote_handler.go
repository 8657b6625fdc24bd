package handlers

import (
	"net/http"

	"github.com/civicseva/civicseva-api/response"
	"github.com/civicseva/civicseva-api/services"
	"github.com/civicseva/civicseva-api/utils"
	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	service *services.VoteService
}

func NewVoteHandler(service *services.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

func voteResponse(summary services.VoteSummary) response.VoteCountResponse {
	return response.VoteCountResponse{
		ReportID:          summary.ReportID,
		Votes:             summary.Count,
		HasVoted:          summary.HasVoted,
		CommunityVerified: summary.CommunityVerified,
	}
}

func (h *VoteHandler) Upvote(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.service.Upvote(id, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: voteResponse(summary)})
}

func (h *VoteHandler) Unvote(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.service.Unvote(id, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: voteResponse(summary)})
}

func (h *VoteHandler) GetVotes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var voterID uint
	if uid, err := utils.GetUserIDFromContext(c); err == nil {
		voterID = uid
	}

	summary, err := h.service.Summary(id, voterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: voteResponse(summary)})
}
