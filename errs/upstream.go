package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors raised by the object-storage and identity-provider adapters. Both
// collaborators are black boxes; their failures surface as generic 500s.
var (
	ErrMediaStorage     = errors.New("media storage operation failed")
	ErrIdentityProvider = errors.New("identity provider operation failed")
)

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMediaStorage,
		Details:    fmt.Sprintf("Storage operation %s failed", operation),
		Cause:      cause,
	}
}

func NewIdentityProviderError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrIdentityProvider,
		Details:    fmt.Sprintf("Identity provider operation %s failed", operation),
		Cause:      cause,
	}
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrMediaStorage)
}

func IsIdentityProviderError(err error) bool {
	return errors.Is(err, ErrIdentityProvider)
}
