package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/shared"
)

// MediaService stores template files behind library resources. Only the
// plantilla resource type carries a downloadable object.
type MediaService struct {
	context.DefaultService

	sqlSvc     *SqlService
	contentSvc *ContentService
	minioSvc   *MinIOService

	downloadExpiry time.Duration
}

const MEDIA_SVC = "media_svc"

var allowedTemplateExtensions = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".png":  "image/png",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(SQL_SVC).(*SqlService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)
	svc.minioSvc = ctx.Service(MINIO_SVC).(*MinIOService)

	svc.downloadExpiry = 15 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	return nil
}

// UploadTemplateFile attaches a file to a plantilla resource, replacing
// any previous object.
func (svc *MediaService) UploadTemplateFile(resourceID string, fileHeader *multipart.FileHeader) (string, error) {
	resource, err := svc.contentSvc.GetResource(resourceID)
	if err != nil {
		return "", err
	}
	if resource.Type != shared.ResourceTypeTemplate {
		return "", shared.NewBadRequestError(nil, "Only template resources carry files")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedTemplateExtensions[ext]
	if !ok {
		return "", shared.NewBadRequestError(nil, "Unsupported file type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", shared.NewBadRequestError(err, "Failed to read upload")
	}
	defer file.Close()

	id, _ := uuid.NewV7()
	objectKey := fmt.Sprintf("templates/%s/%s%s", resourceID, id.String(), ext)

	if _, err := svc.minioSvc.UploadFile(objectKey, file, fileHeader.Size, contentType); err != nil {
		return "", shared.NewInternalError(err, "Failed to store file")
	}

	if resource.ObjectKey != "" {
		if err := svc.minioSvc.DeleteFile(resource.ObjectKey); err != nil {
			log.WithError(err).WithField("object_key", resource.ObjectKey).Warn("Failed to delete previous template file")
		}
	}

	resource.ObjectKey = objectKey
	if err := svc.contentSvc.Repo().UpdateResource(resource); err != nil {
		return "", shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update resource")
	}

	return objectKey, nil
}

// DownloadURL returns a short-lived presigned URL for the resource's
// file.
func (svc *MediaService) DownloadURL(resourceID string) (string, error) {
	resource, err := svc.contentSvc.GetResource(resourceID)
	if err != nil {
		return "", err
	}
	if resource.ObjectKey == "" {
		return "", shared.NewNotFoundError(nil, "Resource has no file")
	}

	url, err := svc.minioSvc.GetFileURL(resource.ObjectKey, svc.downloadExpiry)
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to generate download URL")
	}
	return url, nil
}
