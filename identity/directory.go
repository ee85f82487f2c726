package identity

import (
	"context"
	"errors"
)

// ErrUserNotFound marks lookups for accounts the provider does not know.
var ErrUserNotFound = errors.New("user not found")

// User is the directory's view of an administrative account. The directory is
// the source of truth; nothing is persisted locally.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Enabled  bool   `json:"enabled"`
}

// Directory is the narrow boundary to the external identity provider.
// Implementations must be swappable without touching handler logic.
type Directory interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, username, email, password, role string) (string, error)
	UpdateUserEmail(ctx context.Context, userID, email string) error
	DeleteUser(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, userID, password string) error
}
