package routes

import (
	"github.com/civicseva/civicseva-api/handlers"
	"github.com/civicseva/civicseva-api/middleware"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svcs *services.Services, repos *repositories.Repos) {
	h := handlers.New(svcs, repos)
	auth := middleware.NewAuth()

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	// Tracking and the live feed are public so anonymous reporters can
	// follow their submission.
	r.GET("/track/:tracking_id", h.Report.TrackReport)
	r.GET("/ws/reports", h.WS.Stream)

	open := r.Group("/")
	open.Use(middleware.OptionalJWTMiddleware())
	{
		reports := open.Group("/reports")
		{
			reports.POST("", h.Report.CreateReport)
			reports.GET("", h.Report.ListReports)
			reports.GET("/:id", h.Report.GetReport)
			reports.GET("/:id/updates", h.Report.ListReportUpdates)
			reports.GET("/:id/votes", h.Vote.GetVotes)
			reports.GET("/:id/attachments", h.Attachment.ListByReport)
		}
	}

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())
	{
		reports := authed.Group("/reports")
		{
			reports.PATCH("/:id/status", auth.Staff(), h.Report.TransitionReport)
			reports.POST("/:id/route", auth.Staff(), h.Routing.RouteReport)
			reports.POST("/:id/rating", h.Report.RateReport)
			reports.POST("/:id/votes", h.Vote.Upvote)
			reports.DELETE("/:id/votes", h.Vote.Unvote)
			reports.POST("/:id/attachments", h.Attachment.CreateUploadURL)
		}

		attachments := authed.Group("/attachments")
		{
			attachments.GET("/:id/url", h.Attachment.DownloadURL)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListMyNotifications)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}

		users := authed.Group("/users")
		{
			users.GET("/me", h.User.GetMe)
			users.PUT("/:id", h.User.UpdateUser)
		}

		analytics := authed.Group("/analytics", auth.Admin())
		{
			analytics.GET("/overview", h.Analytics.Overview)
			analytics.GET("/departments", h.Analytics.DepartmentPerformance)
			analytics.GET("/trending", h.Analytics.TrendingIssues)
			analytics.GET("/satisfaction", h.Analytics.CitizenSatisfaction)
		}

		audit := authed.Group("/audit/logs", auth.Admin())
		{
			audit.GET("", h.Audit.GetAuditLogs)
		}
	}
}
