package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jvconstructions/constructions-backend/config"
	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/errs"
	"github.com/jvconstructions/constructions-backend/models"
	"github.com/jvconstructions/constructions-backend/storage"
)

const (
	maxBatchUploadFiles   = 10
	defaultMaxUploadBytes = 32 << 20
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	db             database.Database
	media          storage.MediaStorage
	maxUploadBytes int64
}

func newProjectHandler(db database.Database, media storage.MediaStorage, cfg map[string]string) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		db:             db,
		media:          media,
		maxUploadBytes: config.GetInt64(cfg, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}
}

type createProjectRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	City         *string `json:"city"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	PinCode      *string `json:"pinCode"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

type updateProjectRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	City         *string    `json:"city"`
	AddressLine1 *string    `json:"addressLine1"`
	AddressLine2 *string    `json:"addressLine2"`
	PinCode      *string    `json:"pinCode"`
	StartDate    *string    `json:"startDate"`
	EndDate      *string    `json:"endDate"`
	HeroImageID  *uuid.UUID `json:"heroImageId"`
}

type presignedURLRequest struct {
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

type confirmImageRequest struct {
	StorageKey string `json:"storageKey"`
	MimeType   string `json:"mimeType"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
	SizeBytes  int64  `json:"sizeBytes"`
	IsHero     *bool  `json:"isHero"`
	SortOrder  *int   `json:"sortOrder"`
}

// listProjects returns one page of project cards, optionally filtered by
// status and/or city.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !models.ValidStatus(status) {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("status", "unknown project status"))
			return
		}
		city := r.URL.Query().Get("city")
		page, size := parsePageParams(r)

		projects, total, err := h.db.ProjectRepo().FindPage(status, city, page, size)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("list", "projects", err))
			return
		}

		cards := make([]ProjectCardDTO, 0, len(projects))
		for _, project := range projects {
			cards = append(cards, toProjectCard(project, h.media.CDNURL))
		}

		h.responder.WriteJSON(w, newPage(cards, page, size, total))
	}
}

// getProjectByCode returns the full project view for one code.
func (h projectHandler) getProjectByCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		project, err := h.db.ProjectRepo().FindByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, r, errs.NewNotFoundError("Project with code not found"))
				return
			}
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, toProjectDetail(project, h.media.CDNURL))
	}
}

// createProject registers a new project. The code must match the project-code
// pattern and be globally unique; it cannot change afterwards.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("project"))
			return
		}

		if !projectCodePattern.MatchString(req.Code) {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("code", "must match ^[a-z0-9-]{3,40}$"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if !models.ValidStatus(req.Status) {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("status", "unknown project status"))
			return
		}

		startDate, err := parseDate(req.StartDate)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("startDate", "expected YYYY-MM-DD"))
			return
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("endDate", "expected YYYY-MM-DD"))
			return
		}

		exists, err := h.db.ProjectRepo().ExistsByCode(req.Code)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("check code of", "project", err))
			return
		}
		if exists {
			h.responder.WriteError(w, r, errs.NewBadRequestError("Project code already exists"))
			return
		}

		project := models.Project{
			Code:         req.Code,
			Name:         req.Name,
			Description:  req.Description,
			Status:       req.Status,
			City:         req.City,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			PinCode:      req.PinCode,
			StartDate:    startDate,
			EndDate:      endDate,
		}

		err = h.db.Transaction(func(tx database.Database) error {
			return tx.ProjectRepo().Add(&project)
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Str("code", project.Code).Msg("Created project")
		h.responder.WriteJSONStatus(w, http.StatusCreated, toProjectDetail(&project, h.media.CDNURL))
	}
}

// updateProject applies a partial update: only fields present (non-null) in
// the request overwrite stored values.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("project"))
			return
		}

		if req.Status != nil && !models.ValidStatus(*req.Status) {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("status", "unknown project status"))
			return
		}
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("startDate", "expected YYYY-MM-DD"))
			return
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("endDate", "expected YYYY-MM-DD"))
			return
		}

		var project *models.Project
		err = h.db.Transaction(func(tx database.Database) error {
			project, err = tx.ProjectRepo().FindByID(projectID)
			if err != nil {
				return err
			}

			if req.Name != nil {
				project.Name = *req.Name
			}
			if req.Description != nil {
				project.Description = *req.Description
			}
			if req.Status != nil {
				project.Status = *req.Status
			}
			if req.City != nil {
				project.City = req.City
			}
			if req.AddressLine1 != nil {
				project.AddressLine1 = req.AddressLine1
			}
			if req.AddressLine2 != nil {
				project.AddressLine2 = req.AddressLine2
			}
			if req.PinCode != nil {
				project.PinCode = req.PinCode
			}
			if startDate != nil {
				project.StartDate = startDate
			}
			if endDate != nil {
				project.EndDate = endDate
			}
			if req.HeroImageID != nil {
				project.HeroImageID = req.HeroImageID
			}

			return tx.ProjectRepo().Save(project)
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, toProjectDetail(project, h.media.CDNURL))
	}
}

// deleteProject removes every stored object of the project's gallery, then
// the project row (cascading image rows). Storage deletes happen before the
// row delete; there is no compensation if the row delete then fails.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}

		for _, image := range project.Images {
			if err := h.media.DeleteObject(r.Context(), image.StorageKey); err != nil {
				h.responder.WriteError(w, r, errs.NewStorageError("delete", err))
				return
			}
		}

		err = h.db.Transaction(func(tx database.Database) error {
			return tx.ProjectRepo().Delete(projectID)
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("code", project.Code).Int("images", len(project.Images)).Msg("Deleted project")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// createUploadURL issues a presigned PUT grant scoped to a fresh key under
// the project's image namespace. No database row is written yet.
func (h projectHandler) createUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		var req presignedURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("upload request"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}

		if !strings.HasPrefix(req.MimeType, "image/") {
			h.responder.WriteError(w, r, errs.NewBadRequestError("Only images allowed"))
			return
		}
		ext, ok := allowedImageMime[req.MimeType]
		if !ok {
			h.responder.WriteError(w, r, errs.NewUnsupportedMediaTypeError(req.MimeType, []string{"image/jpeg", "image/png", "image/webp"}))
			return
		}
		if req.SizeBytes <= 0 {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("sizeBytes", "must be positive"))
			return
		}

		key := storage.ImageKey(project.Code, ext)
		presigned, err := h.media.CreatePresignedPut(r.Context(), key, req.MimeType, req.SizeBytes)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewStorageError("presign", err))
			return
		}

		h.responder.WriteJSON(w, presigned)
	}
}

// confirmImage registers metadata for an object the client uploaded through a
// presigned grant. The key must live under the project's image namespace; the
// metadata is trusted as supplied.
func (h projectHandler) confirmImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		var req confirmImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("image confirmation"))
			return
		}
		if req.MimeType == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("mimeType"))
			return
		}

		var (
			project *models.Project
			image   models.ProjectImage
		)
		err := h.db.Transaction(func(tx database.Database) error {
			var err error
			project, err = tx.ProjectRepo().FindByID(projectID)
			if err != nil {
				return err
			}

			if !storage.KeyBelongsToProject(req.StorageKey, project.Code) {
				return errs.NewBadRequestError("storage key " + req.StorageKey + " does not belong to this project")
			}

			isHero := req.IsHero != nil && *req.IsHero
			sortOrder := 0
			if req.SortOrder != nil {
				sortOrder = *req.SortOrder
			}

			image = models.ProjectImage{
				ProjectID:  project.ID,
				StorageKey: req.StorageKey,
				MimeType:   req.MimeType,
				Width:      req.Width,
				Height:     req.Height,
				SizeBytes:  req.SizeBytes,
				SortOrder:  sortOrder,
				Hero:       isHero,
			}
			if err := tx.ProjectImageRepo().Add(&image); err != nil {
				return err
			}

			if isHero {
				return h.pointHeroAt(tx, project, image.ID)
			}
			return nil
		})
		if err != nil {
			var typed *errs.ApiErr
			if errors.As(err, &typed) {
				h.responder.WriteError(w, r, typed)
				return
			}
			h.responder.WriteError(w, r, errs.NewDatabaseError("confirm image of", "project", err))
			return
		}

		h.responder.WriteJSON(w, toImageDTO(&image, project.HeroImageID, h.media.CDNURL))
	}
}

// deleteImage removes one gallery image: the stored object first, then the
// row. When the project's hero pointer named this image, the pointer is
// cleared and no replacement is chosen.
func (h projectHandler) deleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}
		imageID, apiErr := parseUUIDParam(r, "imageID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}
		image, err := h.db.ProjectImageRepo().FindByID(imageID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "image", err))
			return
		}
		if image.ProjectID != project.ID {
			h.responder.WriteError(w, r, errs.NewBadRequestError("Image not in project"))
			return
		}

		if err := h.media.DeleteObject(r.Context(), image.StorageKey); err != nil {
			h.responder.WriteError(w, r, errs.NewStorageError("delete", err))
			return
		}

		err = h.db.Transaction(func(tx database.Database) error {
			if err := tx.ProjectImageRepo().Delete(imageID); err != nil {
				return err
			}
			if project.HeroImageID != nil && *project.HeroImageID == imageID {
				project.HeroImageID = nil
				return tx.ProjectRepo().Save(project)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete image of", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "image deleted successfully",
		})
	}
}

// setHeroImage points the project's hero reference at one of its images. The
// chosen image's flag is set and every sibling flag is cleared in the same
// transaction, so pointer and flags cannot drift.
func (h projectHandler) setHeroImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}
		imageID, apiErr := parseUUIDParam(r, "imageID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		err := h.db.Transaction(func(tx database.Database) error {
			project, err := tx.ProjectRepo().FindByID(projectID)
			if err != nil {
				return err
			}
			image, err := tx.ProjectImageRepo().FindByID(imageID)
			if err != nil {
				return err
			}
			if image.ProjectID != project.ID {
				return errs.NewBadRequestError("Image not in project")
			}
			return h.pointHeroAt(tx, project, imageID)
		})
		if err != nil {
			var typed *errs.ApiErr
			if errors.As(err, &typed) {
				h.responder.WriteError(w, r, typed)
				return
			}
			h.responder.WriteError(w, r, errs.NewDatabaseError("set hero image of", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "hero image set successfully",
		})
	}
}

// uploadImage accepts one multipart file, stores it and registers the row.
// Width and height stay unset: nothing decodes the image bytes.
func (h projectHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}

		if header.Size == 0 {
			h.responder.WriteError(w, r, errs.NewBadRequestError("File is empty"))
			return
		}
		if header.Size > h.maxUploadBytes {
			h.responder.WriteError(w, r, errs.NewBadRequestError("File exceeds maximum upload size"))
			return
		}
		if !allowedImageFilename(header.Filename) {
			h.responder.WriteError(w, r, errs.NewBadRequestError("Only image files (jpg, jpeg, png, webp) are allowed"))
			return
		}

		isHero := r.FormValue("isHero") == "true"
		sortOrder := 0
		if raw := r.FormValue("sortOrder"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				sortOrder = parsed
			}
		}

		image, err := h.storeUpload(r, project, file, header, sortOrder, isHero)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		err = h.db.Transaction(func(tx database.Database) error {
			if err := tx.ProjectImageRepo().Add(image); err != nil {
				return err
			}
			if isHero {
				return h.pointHeroAt(tx, project, image.ID)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("upload image of", "project", err))
			return
		}

		h.logger.Info().Str("key", image.StorageKey).Str("code", project.Code).Msg("Uploaded image")
		h.responder.WriteJSON(w, toImageDTO(image, project.HeroImageID, h.media.CDNURL))
	}
}

// uploadMultipleImages accepts up to 10 files. Empty files and files failing
// the extension check are skipped, never aborting the batch; surviving files
// keep their input position as sort order. When hero is requested only the
// first stored file becomes the hero.
func (h projectHandler) uploadMultipleImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseUUIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("multipart form"))
			return
		}
		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			h.responder.WriteError(w, r, errs.NewBadRequestError("No files provided"))
			return
		}
		if len(files) > maxBatchUploadFiles {
			h.responder.WriteError(w, r, errs.NewBadRequestError("Maximum 10 files allowed per upload"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
			return
		}

		isHero := r.FormValue("isHero") == "true"

		var stored []*models.ProjectImage
		for i, header := range files {
			if header.Size == 0 {
				h.logger.Warn().Int("index", i).Msg("Skipping empty file")
				continue
			}
			if header.Size > h.maxUploadBytes {
				h.logger.Warn().Str("filename", header.Filename).Int64("sizeBytes", header.Size).Msg("Skipping oversized file")
				continue
			}
			if !allowedImageFilename(header.Filename) {
				h.logger.Warn().Str("filename", header.Filename).Msg("Skipping invalid file type")
				continue
			}

			file, err := header.Open()
			if err != nil {
				h.logger.Warn().Err(err).Int("index", i).Msg("Skipping unreadable file")
				continue
			}

			image, storeErr := h.storeUpload(r, project, file, header, i, false)
			file.Close()
			if storeErr != nil {
				h.responder.WriteError(w, r, storeErr)
				return
			}
			stored = append(stored, image)
		}

		err = h.db.Transaction(func(tx database.Database) error {
			for _, image := range stored {
				if err := tx.ProjectImageRepo().Add(image); err != nil {
					return err
				}
			}
			if isHero && len(stored) > 0 {
				first := stored[0]
				if err := h.pointHeroAt(tx, project, first.ID); err != nil {
					return err
				}
				first.Hero = true
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("upload images of", "project", err))
			return
		}

		imageDTOs := make([]ImageDTO, 0, len(stored))
		for _, image := range stored {
			imageDTOs = append(imageDTOs, toImageDTO(image, project.HeroImageID, h.media.CDNURL))
		}

		h.logger.Info().Int("uploaded", len(imageDTOs)).Str("code", project.Code).Msg("Uploaded image batch")
		h.responder.WriteJSON(w, imageDTOs)
	}
}

// storeUpload reads the multipart file, writes it to the object store and
// returns the unsaved row for it.
func (h projectHandler) storeUpload(r *http.Request, project *models.Project, file multipart.File, header *multipart.FileHeader, sortOrder int, hero bool) (*models.ProjectImage, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewBadRequestError("Error reading file: " + err.Error())
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	key := storage.ImageKey(project.Code, ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.media.UploadObject(r.Context(), key, data, contentType); err != nil {
		return nil, errs.NewStorageError("upload", err)
	}

	return &models.ProjectImage{
		ProjectID:  project.ID,
		StorageKey: key,
		MimeType:   contentType,
		SizeBytes:  int64(len(data)),
		SortOrder:  sortOrder,
		Hero:       hero,
	}, nil
}

// pointHeroAt makes imageID the project's hero: pointer updated, flag set,
// sibling flags cleared.
func (h projectHandler) pointHeroAt(tx database.Database, project *models.Project, imageID uuid.UUID) error {
	project.HeroImageID = &imageID
	if err := tx.ProjectRepo().Save(project); err != nil {
		return err
	}

	image, err := tx.ProjectImageRepo().FindByID(imageID)
	if err != nil {
		return err
	}
	if !image.Hero {
		image.Hero = true
		if err := tx.ProjectImageRepo().Save(image); err != nil {
			return err
		}
	}

	return tx.ProjectImageRepo().ClearHeroFlags(project.ID, imageID)
}

// parseUUIDParam reads one uuid path parameter, translating absence or
// malformed values into bad requests.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, *errs.ApiErr) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return parsed, nil
}
