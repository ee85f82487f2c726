package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is one entry in the public services catalog.
type Service struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}
