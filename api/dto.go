package api

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jvconstructions/constructions-backend/models"
)

const dateLayout = "2006-01-02"

var projectCodePattern = regexp.MustCompile(`^[a-z0-9-]{3,40}$`)

// allowedImageMime maps the accepted MIME types to the extension a derived
// storage key uses.
var allowedImageMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// allowedImageFilename reports whether the filename carries one of the
// accepted image extensions.
func allowedImageFilename(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range allowedImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// PageDTO is the envelope every paginated listing returns.
type PageDTO[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func newPage[T any](content []T, page, size int, total int64) PageDTO[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageDTO[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// ImageDTO is one gallery image as shown to clients.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	SortOrder int       `json:"sortOrder"`
	Hero      bool      `json:"hero"`
}

// ProjectCardDTO is the compact listing view of a project.
type ProjectCardDTO struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	City         *string   `json:"city,omitempty"`
	Status       string    `json:"status"`
	HeroImageURL *string   `json:"heroImageUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProjectDetailDTO is the full view of a project including its gallery.
type ProjectDetailDTO struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	City        *string    `json:"city,omitempty"`
	Status      string     `json:"status"`
	StartDate   *string    `json:"startDate,omitempty"`
	EndDate     *string    `json:"endDate,omitempty"`
	HeroImageID *uuid.UUID `json:"heroImageId,omitempty"`
	Images      []ImageDTO `json:"images"`
}

// EnquiryDTO is one customer enquiry as shown to administrators (and echoed
// back on creation).
type EnquiryDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectCode *string   `json:"projectCode"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	AssignedTo  *string   `json:"assignedTo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceDTO is one services-catalog entry.
type ServiceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type cdnFunc func(key string) string

func toImageDTO(image *models.ProjectImage, heroImageID *uuid.UUID, cdn cdnFunc) ImageDTO {
	hero := image.Hero
	if heroImageID != nil {
		hero = *heroImageID == image.ID
	}
	return ImageDTO{
		ID:        image.ID,
		URL:       cdn(image.StorageKey),
		MimeType:  image.MimeType,
		Width:     image.Width,
		Height:    image.Height,
		SortOrder: image.SortOrder,
		Hero:      hero,
	}
}

// sortedImages returns the project's images in display order regardless of
// how the slice was loaded.
func sortedImages(project *models.Project) []models.ProjectImage {
	images := make([]models.ProjectImage, len(project.Images))
	copy(images, project.Images)
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].SortOrder != images[j].SortOrder {
			return images[i].SortOrder < images[j].SortOrder
		}
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})
	return images
}

func toProjectDetail(project *models.Project, cdn cdnFunc) ProjectDetailDTO {
	images := sortedImages(project)
	imageDTOs := make([]ImageDTO, 0, len(images))
	for i := range images {
		imageDTOs = append(imageDTOs, toImageDTO(&images[i], nil, cdn))
	}
	return ProjectDetailDTO{
		ID:          project.ID,
		Code:        project.Code,
		Name:        project.Name,
		Description: project.Description,
		City:        project.City,
		Status:      project.Status,
		StartDate:   formatDate(project.StartDate),
		EndDate:     formatDate(project.EndDate),
		HeroImageID: project.HeroImageID,
		Images:      imageDTOs,
	}
}

// toProjectCard resolves the card hero URL: the image the hero pointer names,
// else the first image in display order, else none.
func toProjectCard(project *models.Project, cdn cdnFunc) ProjectCardDTO {
	var heroURL *string
	images := sortedImages(project)

	if project.HeroImageID != nil {
		for i := range images {
			if images[i].ID == *project.HeroImageID {
				url := cdn(images[i].StorageKey)
				heroURL = &url
				break
			}
		}
	}
	if heroURL == nil && len(images) > 0 {
		url := cdn(images[0].StorageKey)
		heroURL = &url
	}

	return ProjectCardDTO{
		ID:           project.ID,
		Code:         project.Code,
		Name:         project.Name,
		City:         project.City,
		Status:       project.Status,
		HeroImageURL: heroURL,
		UpdatedAt:    project.UpdatedAt,
	}
}

func toEnquiryDTO(enquiry *models.Enquiry, projectCode *string) EnquiryDTO {
	return EnquiryDTO{
		ID:          enquiry.ID,
		ProjectCode: projectCode,
		Name:        enquiry.Name,
		Email:       enquiry.Email,
		Phone:       enquiry.Phone,
		Message:     enquiry.Message,
		Status:      enquiry.Status,
		AssignedTo:  enquiry.AssignedTo,
		CreatedAt:   enquiry.CreatedAt,
	}
}

func toServiceDTO(service *models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
