package auth

import (
	"context"

	"github.com/fittrackr/fittrackr/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different credential schemes
// (password, passkeys, OAuth, etc.) without changing the session or service
// layer code.
type Authenticator interface {
	// Register creates a new account for the given username and credential.
	// Returns the created account or an error if registration fails.
	Register(ctx context.Context, username, credential string) (*models.Account, error)

	// Authenticate verifies the credential and returns the account if valid.
	// Unknown usernames and wrong credentials are indistinguishable to the
	// caller: both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, credential string) (*models.Account, error)
}
