// Package auth provides account registration, password verification and
// the signed session tokens that identify managers and residents.
package auth

import (
	"context"

	"github.com/mmynk/leasehold/internal/models"
)

// Authenticator registers and verifies login accounts. The credential
// format depends on the implementation.
type Authenticator interface {
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
