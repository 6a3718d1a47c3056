package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// UploadService stores screenshot images in object storage and records each
// upload for audit.
type UploadService struct {
	store   persistence.ObjectStore
	records repository.UploadRepository
	cfg     config.StorageConfig
}

// NewUploadService constructs the service. A nil store disables uploads.
func NewUploadService(store persistence.ObjectStore, records repository.UploadRepository, cfg config.StorageConfig) *UploadService {
	return &UploadService{store: store, records: records, cfg: cfg}
}

// UploadInput describes a single multipart file.
type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Upload validates, stores and records a file. The object key is namespaced
// by the caller id plus a randomized suffix to avoid collisions.
func (s *UploadService) Upload(ctx context.Context, ownerID string, input UploadInput) (*domain.UploadRecord, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, apperrors.NewValidationError("only image uploads are accepted", map[string]any{"content_type": contentType})
	}
	if int64(len(input.Data)) > s.cfg.MaxUploadBytes {
		return nil, apperrors.NewValidationError("file exceeds maximum size", map[string]any{
			"max_bytes": s.cfg.MaxUploadBytes,
			"size":      len(input.Data),
		})
	}
	if s.store == nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("object storage not configured"))
	}

	objectKey := ObjectKey(ownerID, input.FileName)
	_, err := s.store.PutObject(ctx, s.cfg.Bucket, objectKey, bytes.NewReader(input.Data), int64(len(input.Data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	record := &domain.UploadRecord{
		OwnerID:   ownerID,
		ObjectKey: objectKey,
		FileName:  input.FileName,
		MimeType:  contentType,
		SizeBytes: int64(len(input.Data)),
		URL:       fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), s.cfg.Bucket, objectKey),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// ListForOwner returns the caller's upload records.
func (s *UploadService) ListForOwner(ctx context.Context, ownerID string) ([]domain.UploadRecord, error) {
	records, err := s.records.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// ObjectKey builds "<ownerID>/<uuid><ext>" from the original filename.
func ObjectKey(ownerID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ownerID + "/" + uuid.NewString() + ext
}
