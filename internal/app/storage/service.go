// Package storage uploads marketplace images to S3-compatible object storage.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// AssetBaseURL is the public prefix objects are served from.
	AssetBaseURL string
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// PresignUpload generates a pre-signed URL the browser can PUT the image to.
	PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// Upload streams body to key through the multipart upload manager.
	Upload(ctx context.Context, key, mimeType string, body io.Reader) error

	// Delete removes the file specified by the given key.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL clients use to display key.
	PublicURL(key string) string
}

// NewStorageService is the factory function for StorageService.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	return newS3Client(ctx, cfg)
}

func publicURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
