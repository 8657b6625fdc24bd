package repositories

//go:generate mockgen -source=report_repository.go -destination=mock_repositories/mock_report_repository.go -package=mock_repositories
//go:generate mockgen -source=report_update_repository.go -destination=mock_repositories/mock_report_update_repository.go -package=mock_repositories
//go:generate mockgen -source=vote_repository.go -destination=mock_repositories/mock_vote_repository.go -package=mock_repositories
//go:generate mockgen -source=notification_repository.go -destination=mock_repositories/mock_notification_repository.go -package=mock_repositories
//go:generate mockgen -source=attachment_repository.go -destination=mock_repositories/mock_attachment_repository.go -package=mock_repositories
//go:generate mockgen -source=audit_repository.go -destination=mock_repositories/mock_audit_repository.go -package=mock_repositories
//go:generate mockgen -source=user_repository.go -destination=mock_repositories/mock_user_repository.go -package=mock_repositories

type Repos struct {
	Report       ReportRepo
	ReportUpdate ReportUpdateRepo
	Vote         VoteRepo
	Notification NotificationRepo
	Attachment   AttachmentRepo
	Audit        AuditRepo
	User         UserRepo
}

func New() *Repos {
	return &Repos{
		Report:       &DBReportRepo{},
		ReportUpdate: &DBReportUpdateRepo{},
		Vote:         &DBVoteRepo{},
		Notification: &DBNotificationRepo{},
		Attachment:   &DBAttachmentRepo{},
		Audit:        &DBAuditRepo{},
		User:         &DBUserRepo{},
	}
}
