package database

import (
	"github.com/google/uuid"
	"github.com/jvconstructions/constructions-backend/models"
	"gorm.io/gorm"
)

type ProjectImageRepo struct {
	db *gorm.DB
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db}
}

// FindByID returns an image by its primary key
func (r *ProjectImageRepo) FindByID(id uuid.UUID) (*models.ProjectImage, error) {
	var image models.ProjectImage
	err := r.db.First(&image, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// FindByProject returns a project's images in display order
func (r *ProjectImageRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectImage, error) {
	var images []*models.ProjectImage
	err := r.db.
		Where("project_id = ?", projectID).
		Order(imageDisplayOrder).
		Find(&images).Error
	return images, err
}

// Add inserts a new image row, assigning an ID when none is set
func (r *ProjectImageRepo) Add(image *models.ProjectImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.db.Create(image).Error
}

// Save persists every field of an existing image row
func (r *ProjectImageRepo) Save(image *models.ProjectImage) error {
	return r.db.Save(image).Error
}

// Delete removes an image row by id
func (r *ProjectImageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectImage{}, "id = ?", id).Error
}

// ClearHeroFlags drops the hero flag on every image of the project except the
// given one, keeping the per-image flags in step with the project's pointer.
func (r *ProjectImageRepo) ClearHeroFlags(projectID, exceptImageID uuid.UUID) error {
	return r.db.Model(&models.ProjectImage{}).
		Where("project_id = ? AND id <> ?", projectID, exceptImageID).
		Update("hero", false).Error
}
