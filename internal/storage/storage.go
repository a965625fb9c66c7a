package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
// Clients upload and download directly against presigned URLs; the API
// never proxies file bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// ObjectExists reports whether the client has finished uploading objectKey.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

var ErrUnsupportedContentType = errors.New("unsupported content type")

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

var reportExtensions = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}

// PhotoKey builds the object key for an entry photo,
// e.g. photos/<user>/food/<id>.jpg.
func PhotoKey(userID, entryType, id, contentType string) (string, error) {
	ext, ok := photoExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	return fmt.Sprintf("photos/%s/%s/%s.%s", userID, entryType, id, ext), nil
}

// ReportKey builds the object key for a medical report file.
func ReportKey(userID, reportID, contentType string) (string, error) {
	ext, ok := reportExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	return fmt.Sprintf("reports/%s/%s.%s", userID, reportID, ext), nil
}
