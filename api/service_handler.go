package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/errs"
	"github.com/jvconstructions/constructions-backend/models"
)

type serviceHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newServiceHandler(db database.Database) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

type serviceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// listServices returns one page of the catalog ordered by name.
func (h serviceHandler) listServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := parsePageParams(r)

		entries, total, err := h.db.ServiceRepo().FindPage(page, size)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("list", "services", err))
			return
		}

		dtos := make([]ServiceDTO, 0, len(entries))
		for _, entry := range entries {
			dtos = append(dtos, toServiceDTO(entry))
		}

		h.responder.WriteJSON(w, newPage(dtos, page, size, total))
	}
}

// getServiceByName returns one catalog entry by its exact name.
func (h serviceHandler) getServiceByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		entry, err := h.db.ServiceRepo().FindByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, r, errs.NewNotFoundError("Service with name not found"))
				return
			}
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "service", err))
			return
		}

		h.responder.WriteJSON(w, toServiceDTO(entry))
	}
}

// createService adds a catalog entry. Names are unique; a duplicate surfaces
// as a conflict from the storage layer.
func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req serviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("service"))
			return
		}
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("name"))
			return
		}

		entry := models.Service{Name: *req.Name}
		if req.Description != nil {
			entry.Description = *req.Description
		}

		if err := h.db.ServiceRepo().Add(&entry); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("create", "service", err))
			return
		}

		h.logger.Info().Str("name", entry.Name).Msg("Created service")
		h.responder.WriteJSONStatus(w, http.StatusCreated, toServiceDTO(&entry))
	}
}

// updateService applies a partial update to name and/or description.
func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, apiErr := parseUUIDParam(r, "serviceID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		var req serviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("service"))
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			h.responder.WriteError(w, r, errs.NewInvalidFieldError("name", "must not be blank"))
			return
		}

		var entry *models.Service
		err := h.db.Transaction(func(tx database.Database) error {
			var err error
			entry, err = tx.ServiceRepo().FindByID(serviceID)
			if err != nil {
				return err
			}

			if req.Name != nil {
				entry.Name = *req.Name
			}
			if req.Description != nil {
				entry.Description = *req.Description
			}

			return tx.ServiceRepo().Save(entry)
		})
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("update", "service", err))
			return
		}

		h.responder.WriteJSON(w, toServiceDTO(entry))
	}
}

// deleteService removes a catalog entry.
func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, apiErr := parseUUIDParam(r, "serviceID")
		if apiErr != nil {
			h.responder.WriteError(w, r, apiErr)
			return
		}

		if _, err := h.db.ServiceRepo().FindByID(serviceID); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "service", err))
			return
		}

		if err := h.db.ServiceRepo().Delete(serviceID); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete", "service", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "service deleted successfully",
		})
	}
}
