package database

import (
	"github.com/google/uuid"
	"github.com/jvconstructions/constructions-backend/models"
	"gorm.io/gorm"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// FindPage returns one page of catalog entries ordered by name. The second
// return value is the total row count.
func (r *ServiceRepo) FindPage(page, size int) ([]*models.Service, int64, error) {
	var total int64
	if err := r.db.Model(&models.Service{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var services []*models.Service
	err := r.db.
		Order("name ASC").
		Offset(page * size).
		Limit(size).
		Find(&services).Error
	return services, total, err
}

// FindByID returns a catalog entry by primary key
func (r *ServiceRepo) FindByID(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// FindByName returns a catalog entry by its unique name
func (r *ServiceRepo) FindByName(name string) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Add inserts a new catalog entry, assigning an ID when none is set
func (r *ServiceRepo) Add(service *models.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	return r.db.Create(service).Error
}

// Save persists every field of an existing catalog entry
func (r *ServiceRepo) Save(service *models.Service) error {
	return r.db.Save(service).Error
}

// Delete removes a catalog entry by id
func (r *ServiceRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Service{}, "id = ?", id).Error
}
