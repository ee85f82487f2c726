package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses. Stored as strings so the enum survives schema dumps.
const (
	StatusPlanned   = "PLANNED"
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
)

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Project represents one construction project with its image gallery.
// Code is unique and immutable after creation; HeroImageID is the
// authoritative pointer to the display image.
type Project struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Code         string         `json:"code" db:"code" gorm:"type:varchar(40);not null;uniqueIndex"`
	Name         string         `json:"name" db:"name" gorm:"type:varchar(200);not null"`
	Description  string         `json:"description" db:"description" gorm:"type:text"`
	Status       string         `json:"status" db:"status" gorm:"type:varchar(24);not null"`
	City         *string        `json:"city,omitempty" db:"city" gorm:"type:text"`
	AddressLine1 *string        `json:"addressLine1,omitempty" db:"address_line1" gorm:"type:text"`
	AddressLine2 *string        `json:"addressLine2,omitempty" db:"address_line2" gorm:"type:text"`
	PinCode      *string        `json:"pinCode,omitempty" db:"pin_code" gorm:"type:text"`
	StartDate    *time.Time     `json:"startDate,omitempty" db:"start_date" gorm:"type:date"`
	EndDate      *time.Time     `json:"endDate,omitempty" db:"end_date" gorm:"type:date"`
	HeroImageID  *uuid.UUID     `json:"heroImageId,omitempty" db:"hero_image_id" gorm:"type:uuid"`
	Images       []ProjectImage `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at" gorm:"not null"`
}
