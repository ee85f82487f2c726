package database

import (
	"github.com/google/uuid"
	"github.com/jvconstructions/constructions-backend/models"
	"gorm.io/gorm"
)

type EnquiryRepo struct {
	db *gorm.DB
}

func NewEnquiryRepo(db *gorm.DB) *EnquiryRepo {
	return &EnquiryRepo{db}
}

// Add inserts a new enquiry, assigning an ID when none is set
func (r *EnquiryRepo) Add(enquiry *models.Enquiry) error {
	if enquiry.ID == uuid.Nil {
		enquiry.ID = uuid.New()
	}
	return r.db.Create(enquiry).Error
}

// FindByID returns an enquiry with its project, if any, by primary key
func (r *EnquiryRepo) FindByID(id uuid.UUID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.Preload("Project").First(&enquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// FindPage returns one page of enquiries, newest first, optionally filtered
// by exact status. The second return value is the total row count.
func (r *EnquiryRepo) FindPage(status string, page, size int) ([]*models.Enquiry, int64, error) {
	query := r.db.Model(&models.Enquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enquiries []*models.Enquiry
	err := query.Preload("Project").
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&enquiries).Error
	return enquiries, total, err
}

// Save persists every field of an existing enquiry
func (r *EnquiryRepo) Save(enquiry *models.Enquiry) error {
	return r.db.Omit("Project").Save(enquiry).Error
}
