package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/civicseva/civicseva-api/minio"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

const presignExpiry = 15 * time.Minute

var ErrAttachmentNotFound = errors.New("attachment not found")

type AttachmentService struct {
	repos *repositories.Repos
}

func NewAttachmentService(repos *repositories.Repos) *AttachmentService {
	return &AttachmentService{repos: repos}
}

// CreateUploadURL records the attachment metadata and returns a presigned
// PUT URL the client uploads the media bytes to.
func (s *AttachmentService) CreateUploadURL(ctx context.Context, reportID uint, fileName, contentType string, size int64) (*models.Attachment, string, error) {
	if _, err := s.repos.Report.FindByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrReportNotFound
		}
		return nil, "", fmt.Errorf("%w: %v", ErrStore, err)
	}

	objectKey := fmt.Sprintf("reports/%d/%s-%s", reportID, uuid.NewString(), fileName)

	attachment := &models.Attachment{
		ReportID:    reportID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.repos.Attachment.Create(attachment); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStore, err)
	}

	uploadURL, err := minio.Client.PresignedPutObject(ctx, minio.BucketName, objectKey, presignExpiry)
	if err != nil {
		return nil, "", err
	}

	return attachment, uploadURL.String(), nil
}

// DownloadURL returns a presigned GET URL for the attachment bytes.
func (s *AttachmentService) DownloadURL(ctx context.Context, id uint) (string, error) {
	attachment, err := s.repos.Attachment.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAttachmentNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrStore, err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))

	downloadURL, err := minio.Client.PresignedGetObject(ctx, minio.BucketName, attachment.ObjectKey, presignExpiry, params)
	if err != nil {
		return "", err
	}
	return downloadURL.String(), nil
}

func (s *AttachmentService) ListByReport(reportID uint) ([]models.Attachment, error) {
	return s.repos.Attachment.ListByReportID(reportID)
}

// StatObject verifies the uploaded object exists in the bucket.
func (s *AttachmentService) StatObject(ctx context.Context, objectKey string) (minioSDK.ObjectInfo, error) {
	return minio.Client.StatObject(ctx, minio.BucketName, objectKey, minioSDK.StatObjectOptions{})
}
