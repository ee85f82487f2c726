package api

import (
	"net/http"
	"strconv"

	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/identity"
	"github.com/jvconstructions/constructions-backend/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	serviceHandler serviceHandler
	enquiryHandler enquiryHandler
	userHandler    userHandler
	healthHandler  healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, media storage.MediaStorage, directory identity.Directory, cfg map[string]string) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db, media, cfg),
		serviceHandler: newServiceHandler(db),
		enquiryHandler: newEnquiryHandler(db, cfg),
		userHandler:    newUserHandler(directory),
		healthHandler:  newHealthHandler(db),
	}
}

// parsePageParams reads page (0-based) and size query parameters with
// defaults and an upper size cap.
func parsePageParams(r *http.Request) (page, size int) {
	page = 0
	size = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
