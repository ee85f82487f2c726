package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/errs"
	"github.com/jvconstructions/constructions-backend/models"
	"github.com/jvconstructions/constructions-backend/services"
)

type enquiryHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	cfg       map[string]string
}

func newEnquiryHandler(db database.Database, cfg map[string]string) enquiryHandler {
	logger := log.With().Str("handlerName", "enquiryHandler").Logger()

	return enquiryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		cfg:       cfg,
	}
}

type createEnquiryRequest struct {
	ProjectCode *string `json:"projectCode"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Message     string  `json:"message"`
	UTMSource   *string `json:"utmSource"`
}

type updateEnquiryRequest struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
}

// createEnquiry accepts a public enquiry submission. Status is always NEW on
// creation regardless of what the client sends; a referenced project code
// must exist.
func (h enquiryHandler) createEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEnquiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("enquiry"))
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if !strings.Contains(req.Email, "@") {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("email", "not a valid email address"))
			return
		}

		enquiry := models.Enquiry{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Message:   req.Message,
			Status:    models.EnquiryStatusNew,
			UTMSource: req.UTMSource,
		}

		var projectCode *string
		if req.ProjectCode != nil && *req.ProjectCode != "" {
			project, err := h.db.ProjectRepo().FindByCode(*req.ProjectCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					h.responder.WriteError(w, r, errs.NewNotFoundError("Project with code "+*req.ProjectCode+" not found"))
					return
				}
				h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err))
				return
			}
			enquiry.ProjectID = &project.ID
			projectCode = &project.Code
		}

		if err := h.db.EnquiryRepo().Add(&enquiry); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("create", "enquiry", err))
			return
		}

		code := ""
		if projectCode != nil {
			code = *projectCode
		}
		go services.NotifyNewEnquiry(h.cfg, &enquiry, code)

		h.logger.Info().Str("enquiryId", enquiry.ID.String()).Msg("Created enquiry")
		h.responder.WriteJSONStatus(w, http.StatusCreated, toEnquiryDTO(&enquiry, projectCode))
	}
}

// listEnquiries returns one page of enquiries, newest first, optionally
// filtered by exact status.
func (h enquiryHandler) listEnquiries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		page, size := parsePageParams(r)

		enquiries, total, err := h.db.EnquiryRepo().FindPage(status, page, size)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("list", "enquiries", err))
			return
		}

		dtos := make([]EnquiryDTO, 0, len(enquiries))
		for _, enquiry := range enquiries {
			var projectCode *string
			if enquiry.Project != nil {
				projectCode = &enquiry.Project.Code
			}
			dtos = append(dtos, toEnquiryDTO(enquiry, projectCode))
		}

		h.responder.WriteJSON(w, newPage(dtos, page, size, total))
	}
}

// updateEnquiry applies a partial update to status and/or assignee. Status
// transitions are unrestricted; any non-empty string is accepted.
func (h enquiryHandler) updateEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enquiryID, apiErr := parseUUIDParam(r, "enquiryID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		var req updateEnquiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("enquiry"))
			return
		}
		if req.Status != nil && strings.TrimSpace(*req.Status) == "" {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("status", "must not be blank"))
			return
		}

		var enquiry *models.Enquiry
		err := h.db.Transaction(func(tx database.Database) error {
			var err error
			enquiry, err = tx.EnquiryRepo().FindByID(enquiryID)
			if err != nil {
				return err
			}

			if req.Status != nil {
				enquiry.Status = *req.Status
			}
			if req.AssignedTo != nil {
				enquiry.AssignedTo = req.AssignedTo
			}

			return tx.EnquiryRepo().Save(enquiry)
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("update", "enquiry", err))
			return
		}

		var projectCode *string
		if enquiry.Project != nil {
			projectCode = &enquiry.Project.Code
		}
		h.responder.WriteJSON(w, toEnquiryDTO(enquiry, projectCode))
	}
}
