package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jvconstructions/constructions-backend/config"
)

// KeycloakDirectory implements Directory over the Keycloak Admin REST API,
// authenticated with a service-account client-credentials token.
type KeycloakDirectory struct {
	client *resty.Client
	logger zerolog.Logger
	realm  string
}

type keycloakUser struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Enabled  bool   `json:"enabled"`
}

type keycloakCredential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

type keycloakRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewKeycloakDirectory builds the adapter from config. The resty client's
// transport carries the token source, so every admin call is authenticated
// and tokens refresh transparently.
func NewKeycloakDirectory(cfg map[string]string) *KeycloakDirectory {
	baseURL := strings.TrimRight(config.GetString(cfg, "KEYCLOAK_BASE_URL", ""), "/")
	realm := config.GetString(cfg, "KEYCLOAK_REALM", "")

	credentials := clientcredentials.Config{
		ClientID:     config.GetString(cfg, "KEYCLOAK_CLIENT_ID", ""),
		ClientSecret: config.GetString(cfg, "KEYCLOAK_CLIENT_SECRET", ""),
		TokenURL:     fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", baseURL, realm),
	}

	client := resty.NewWithClient(credentials.Client(context.Background())).
		SetBaseURL(fmt.Sprintf("%s/admin/realms/%s", baseURL, realm)).
		SetTimeout(10 * time.Second)

	return &KeycloakDirectory{
		client: client,
		logger: log.With().Str("component", "keycloakDirectory").Logger(),
		realm:  realm,
	}
}

// NewKeycloakDirectoryWithClient wires a pre-built resty client pointed at
// <base>/admin/realms/<realm>; used by tests.
func NewKeycloakDirectoryWithClient(client *resty.Client, realm string) *KeycloakDirectory {
	return &KeycloakDirectory{
		client: client,
		logger: log.With().Str("component", "keycloakDirectory").Logger(),
		realm:  realm,
	}
}

func (d *KeycloakDirectory) GetUser(ctx context.Context, userID string) (*User, error) {
	var user keycloakUser
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/users/" + userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching user %s: status %d", userID, resp.StatusCode())
	}
	return &User{ID: user.ID, Username: user.Username, Email: user.Email, Enabled: user.Enabled}, nil
}

func (d *KeycloakDirectory) ListUsers(ctx context.Context) ([]User, error) {
	var raw []keycloakUser
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing users: status %d", resp.StatusCode())
	}

	users := make([]User, 0, len(raw))
	for _, u := range raw {
		users = append(users, User{ID: u.ID, Username: u.Username, Email: u.Email, Enabled: u.Enabled})
	}
	return users, nil
}

// CreateUser registers a new enabled account, sets a non-temporary password
// and assigns one realm-level role. The create call must report 201, anything
// else aborts before the follow-up calls.
func (d *KeycloakDirectory) CreateUser(ctx context.Context, username, email, password, role string) (string, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(keycloakUser{Username: username, Email: email, Enabled: true}).
		Post("/users")
	if err != nil {
		return "", fmt.Errorf("creating user %s: %w", username, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("creating user %s: status %d", username, resp.StatusCode())
	}

	userID := createdID(resp.Header().Get("Location"))
	if userID == "" {
		return "", fmt.Errorf("creating user %s: no id in Location header", username)
	}

	if err := d.ResetPassword(ctx, userID, password); err != nil {
		return "", err
	}

	if err := d.assignRealmRole(ctx, userID, role); err != nil {
		return "", err
	}

	d.logger.Info().Str("userId", userID).Str("username", username).Str("role", role).Msg("Created directory user")
	return userID, nil
}

func (d *KeycloakDirectory) UpdateUserEmail(ctx context.Context, userID, email string) error {
	current, err := d.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(keycloakUser{Username: current.Username, Email: email, Enabled: current.Enabled}).
		Put("/users/" + userID)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", userID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("updating user %s: status %d", userID, resp.StatusCode())
	}
	return nil
}

func (d *KeycloakDirectory) DeleteUser(ctx context.Context, userID string) error {
	resp, err := d.client.R().
		SetContext(ctx).
		Delete("/users/" + userID)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	if resp.IsError() {
		return fmt.Errorf("deleting user %s: status %d", userID, resp.StatusCode())
	}
	return nil
}

func (d *KeycloakDirectory) ResetPassword(ctx context.Context, userID, password string) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(keycloakCredential{Type: "password", Value: password, Temporary: false}).
		Put("/users/" + userID + "/reset-password")
	if err != nil {
		return fmt.Errorf("resetting password for %s: %w", userID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("resetting password for %s: status %d", userID, resp.StatusCode())
	}
	return nil
}

func (d *KeycloakDirectory) assignRealmRole(ctx context.Context, userID, role string) error {
	var roleRep keycloakRole
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&roleRep).
		Get("/roles/" + role)
	if err != nil {
		return fmt.Errorf("fetching role %s: %w", role, err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetching role %s: status %d", role, resp.StatusCode())
	}

	resp, err = d.client.R().
		SetContext(ctx).
		SetBody([]keycloakRole{roleRep}).
		Post("/users/" + userID + "/role-mappings/realm")
	if err != nil {
		return fmt.Errorf("assigning role %s to %s: %w", role, userID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("assigning role %s to %s: status %d", role, userID, resp.StatusCode())
	}
	return nil
}

// createdID pulls the new resource id out of a Location header like
// .../admin/realms/<realm>/users/<id>.
func createdID(location string) string {
	if location == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(location, "/"), "/")
	return parts[len(parts)-1]
}
