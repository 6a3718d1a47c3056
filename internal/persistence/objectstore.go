package persistence

import (
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

// ObjectStore is the narrow surface the upload service needs from an
// S3-compatible backend.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioStore wraps a MinIO client plus its target bucket.
type MinioStore struct {
	Client *minio.Client
	Bucket string
}

// NewMinioStore connects to the configured S3-compatible endpoint. Missing
// credentials leave the store nil; uploads then fail with a server error.
func NewMinioStore(cfg config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		logger.Warn("storage credentials not provided; uploads disabled")
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("object storage configured", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return &MinioStore{Client: client, Bucket: cfg.Bucket}, nil
}

// PutObject stores an object in the configured bucket.
func (s *MinioStore) PutObject(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if s == nil || s.Client == nil {
		return minio.UploadInfo{}, errors.New("object store not configured")
	}
	return s.Client.PutObject(ctx, bucket, objectName, reader, size, opts)
}
