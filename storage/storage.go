package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PresignedUpload describes a time-limited direct-upload grant. The client
// PUTs the object bytes to UploadURL with the listed headers; no database row
// exists until the upload is confirmed.
type PresignedUpload struct {
	UploadURL  string            `json:"uploadUrl"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers"`
	ExpiresIn  int               `json:"expiresIn"`
	StorageKey string            `json:"storageKey"`
}

// MediaStorage is the narrow boundary to the object store. Implementations
// must be swappable without touching handler logic.
type MediaStorage interface {
	CreatePresignedPut(ctx context.Context, key, mimeType string, sizeBytes int64) (*PresignedUpload, error)
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	CDNURL(key string) string
}

// ImageKey derives a fresh object key for a project image:
// projects/<code>/images/<random-id>.<ext>.
func ImageKey(projectCode, extension string) string {
	ext := strings.TrimPrefix(extension, ".")
	return fmt.Sprintf("projects/%s/images/%s.%s", projectCode, uuid.New(), ext)
}

// ImageKeyPrefix is the namespace every image key of a project must live under.
func ImageKeyPrefix(projectCode string) string {
	return fmt.Sprintf("projects/%s/images/", projectCode)
}

// KeyBelongsToProject reports whether key is namespaced under the project's
// image prefix. Confirm requests with keys outside the namespace are rejected.
func KeyBelongsToProject(key, projectCode string) bool {
	return strings.HasPrefix(key, ImageKeyPrefix(projectCode))
}
