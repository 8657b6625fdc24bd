package services

import (
	"github.com/civicseva/civicseva-api/geocode"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/routing"
)

type Services struct {
	Audit        *AuditService
	Analytics    *AnalyticsService
	Attachment   *AttachmentService
	Notification *NotificationService
	Report       *ReportService
	Routing      *RoutingService
	User         *UserService
	Vote         *VoteService
	Hub          *realtime.Hub
}

// Options carries the external collaborators the services need beyond the
// repositories.
type Options struct {
	Rules           routing.Rules
	Geocoder        geocode.Geocoder
	VerifyThreshold int
}

func New(repos *repositories.Repos, opts Options) *Services {
	if opts.Rules == nil {
		opts.Rules = routing.DefaultRules()
	}
	if opts.Geocoder == nil {
		opts.Geocoder = geocode.Offline{}
	}

	hub := realtime.NewHub()
	notification := NewNotificationService(repos, LogPushSender{}, LogEmailSender{})
	routingSvc := NewRoutingService(repos, opts.Rules, hub, notification)

	return &Services{
		Audit:        NewAuditService(repos),
		Analytics:    NewAnalyticsService(repos),
		Attachment:   NewAttachmentService(repos),
		Notification: notification,
		Report:       NewReportService(repos, routingSvc, notification, opts.Geocoder, hub),
		Routing:      routingSvc,
		User:         NewUserService(repos),
		Vote:         NewVoteService(repos, hub, opts.VerifyThreshold),
		Hub:          hub,
	}
}
