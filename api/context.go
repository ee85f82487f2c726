package api

import (
	"context"
	"errors"
)

type keyType string

const principalKey keyType = "principal"

// Principal is the authenticated caller extracted from the bearer token.
type Principal struct {
	Subject  string
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given realm role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ctxWithPrincipal adds the authenticated principal to the context
func ctxWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// ctxPrincipal retrieves the authenticated principal from the context
func ctxPrincipal(ctx context.Context) (Principal, error) {
	value := ctx.Value(principalKey)
	if value == nil {
		return Principal{}, errors.New("no principal in context")
	}
	principal, ok := value.(Principal)
	if !ok {
		return Principal{}, errors.New("principal has unexpected type")
	}
	return principal, nil
}
