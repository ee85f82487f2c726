package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectImage is one stored gallery image owned by a project. StorageKey is
// the object key under projects/<code>/images/; the row and the stored object
// are kept consistent by sequential calls, not a shared transaction.
type ProjectImage struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_images_project;index:idx_project_images_sort,priority:1"`
	StorageKey string    `json:"storageKey" db:"storage_key" gorm:"type:text;not null"`
	MimeType   string    `json:"mimeType" db:"mime_type" gorm:"type:varchar(64);not null"`
	Width      *int      `json:"width,omitempty" db:"width"`
	Height     *int      `json:"height,omitempty" db:"height"`
	SizeBytes  int64     `json:"sizeBytes" db:"size_bytes"`
	SortOrder  int       `json:"sortOrder" db:"sort_order" gorm:"not null;default:0;index:idx_project_images_sort,priority:2"`
	Hero       bool      `json:"hero" db:"hero" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}
