package handlers

import (
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/services"
)

type Handlers struct {
	Analytics    *AnalyticsHandler
	Attachment   *AttachmentHandler
	Audit        *AuditHandler
	Auth         *AuthHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Routing      *RoutingHandler
	User         *UserHandler
	Vote         *VoteHandler
	WS           *WSHandler
}

func New(svcs *services.Services, repos *repositories.Repos) *Handlers {
	return &Handlers{
		Analytics:    NewAnalyticsHandler(svcs.Analytics),
		Attachment:   NewAttachmentHandler(svcs.Attachment),
		Audit:        NewAuditHandler(svcs.Audit),
		Auth:         NewAuthHandler(svcs.User),
		Notification: NewNotificationHandler(svcs.Notification),
		Report:       NewReportHandler(svcs.Report, repos.Audit),
		Routing:      NewRoutingHandler(svcs.Routing),
		User:         NewUserHandler(svcs.User),
		Vote:         NewVoteHandler(svcs.Vote),
		WS:           NewWSHandler(svcs.Hub),
	}
}
