package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jvconstructions/constructions-backend/errs"
	"github.com/jvconstructions/constructions-backend/identity"
)

// userHandler proxies administrative account management to the identity
// provider. Nothing is persisted locally.
type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	directory identity.Directory
}

func newUserHandler(directory identity.Directory) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		directory: directory,
	}
}

type createUserRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		user, err := h.directory.GetUser(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("get user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.directory.ListUsers(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("list users", err))
			return
		}
		if users == nil {
			users = []identity.User{}
		}

		h.responder.WriteJSON(w, users)
	}
}

func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("user"))
			return
		}

		if strings.TrimSpace(req.UserName) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("userName"))
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("password"))
			return
		}
		if strings.TrimSpace(req.Role) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("role"))
			return
		}

		userID, err := h.directory.CreateUser(r.Context(), req.UserName, req.Email, req.Password, req.Role)
		if err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("create user", err))
			return
		}

		h.logger.Info().Str("userId", userID).Msg("Created user")
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]string{
			"id":       userID,
			"userName": req.UserName,
		})
	}
}

func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("user"))
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("email"))
			return
		}

		if err := h.directory.UpdateUserEmail(r.Context(), userID, req.Email); err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("update user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "user updated successfully",
		})
	}
}

func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		if err := h.directory.DeleteUser(r.Context(), userID); err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("delete user", err))
			return
		}

		h.logger.Info().Str("userId", userID).Msg("Deleted user")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "user deleted successfully",
		})
	}
}

func (h userHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, r, errs.Malformed("password reset"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("password"))
			return
		}

		if err := h.directory.ResetPassword(r.Context(), userID, req.Password); err != nil {
			h.responder.WriteError(w, r, translateDirectoryError("reset password", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "password reset successfully",
		})
	}
}

// translateDirectoryError maps missing accounts to a 404 and wraps everything
// else as an identity-provider failure.
func translateDirectoryError(operation string, err error) error {
	if errors.Is(err, identity.ErrUserNotFound) {
		return errs.NewNotFoundError("User not found")
	}
	return errs.NewIdentityProviderError(operation, err)
}
