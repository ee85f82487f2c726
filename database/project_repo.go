package database

import (
	"github.com/google/uuid"
	"github.com/jvconstructions/constructions-backend/models"
	"gorm.io/gorm"
)

const imageDisplayOrder = "sort_order ASC, created_at ASC, id ASC"

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order(imageDisplayOrder)
	})
}

// FindPage returns one page of projects, newest first, optionally filtered by
// status and/or city (both exact matches). The second return value is the
// total row count for the filter.
func (r *ProjectRepo) FindPage(status, city string, page, size int) ([]*models.Project, int64, error) {
	query := r.db.Model(&models.Project{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := withImages(query).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project with its images by primary key
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := withImages(r.db).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByCode returns a project with its images by its unique code
func (r *ProjectRepo) FindByCode(code string) (*models.Project, error) {
	var project models.Project
	err := withImages(r.db).First(&project, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ExistsByCode reports whether any project already uses the given code
func (r *ProjectRepo) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project, assigning an ID when none is set
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// Save persists every field of an existing project
func (r *ProjectRepo) Save(project *models.Project) error {
	return r.db.Omit("Images").Save(project).Error
}

// Delete removes a project row and, through the FK cascade, its image rows.
// Stored objects are the caller's responsibility.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
