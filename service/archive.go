package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

// ArchiveService keeps the uploaded originals in object storage so a
// document can be re-downloaded after analysis. The pipeline itself never
// depends on the archive; it is skipped entirely when unconfigured.
type ArchiveService struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewArchiveService(cfg *config.MinioConfig) (*ArchiveService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &ArchiveService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *ArchiveService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// StoreOriginal uploads the raw document under {docID}/{filename} and
// returns a presigned URL for retrieval
func (s *ArchiveService) StoreOriginal(ctx context.Context, docID, filename string, data []byte, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%s", docID, filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		// The object is stored either way; fall back to the plain bucket
		// URL, which works when the bucket policy allows public reads.
		slog.Warn("failed to generate presigned URL, falling back to public URL",
			"doc_id", docID,
			"error", err,
		)
		return s.GetPublicURL(docID, filename), nil
	}

	return url.String(), nil
}

// DeleteOriginal removes the archived document
func (s *ArchiveService) DeleteOriginal(ctx context.Context, docID, filename string) error {
	objectName := fmt.Sprintf("%s/%s", docID, filename)
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetPublicURL returns a public URL for the object (if bucket policy allows)
func (s *ArchiveService) GetPublicURL(docID, filename string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s/%s", protocol, s.config.Endpoint, s.bucket, docID, filename)
}
