package models

import (
	"time"

	"github.com/google/uuid"
)

// EnquiryStatusNew is the status every enquiry starts in, regardless of what
// the submitter sends.
const EnquiryStatusNew = "NEW"

// Enquiry is a customer contact submission, optionally linked to a project.
type Enquiry struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty" db:"project_id" gorm:"type:uuid;index:idx_enquiries_project"`
	Name       string     `json:"name" db:"name" gorm:"type:varchar(120);not null"`
	Email      string     `json:"email" db:"email" gorm:"type:varchar(160);not null"`
	Phone      string     `json:"phone" db:"phone" gorm:"type:varchar(20)"`
	Message    string     `json:"message" db:"message" gorm:"type:text"`
	Status     string     `json:"status" db:"status" gorm:"type:varchar(24);not null;index:idx_enquiries_status"`
	AssignedTo *string    `json:"assignedTo,omitempty" db:"assigned_to" gorm:"type:text"`
	UTMSource  *string    `json:"utmSource,omitempty" db:"utm_source" gorm:"type:text"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at" gorm:"not null;index:idx_enquiries_created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}
