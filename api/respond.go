package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jvconstructions/constructions-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// errorBody is the wire shape every error response uses.
type errorBody struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError translates err into the structured error body. Typed *ApiErr
// values keep their status and message; anything else is logged and surfaced
// as an unclassified 500.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	path := ""
	if req != nil {
		path = req.URL.Path
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Str("path", path).Msg(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, errorBody{
			Status:    http.StatusInternalServerError,
			Error:     http.StatusText(http.StatusInternalServerError),
			Code:      "SERVER_ERROR",
			Message:   "An unexpected error occurred",
			Path:      path,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Str("path", path).Msg(apiErr.GetFullError())
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, errorBody{
		Status:    apiErr.StatusCode,
		Error:     http.StatusText(apiErr.StatusCode),
		Code:      apiErr.WireCode(),
		Message:   apiErr.Error(),
		Path:      path,
		Timestamp: time.Now().UTC(),
	})
}
