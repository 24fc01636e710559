package credentials

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no credential exists for an email.
	ErrNotFound = errors.New("credential not found")
	// ErrDuplicateEmail is returned by Save when another credential
	// already holds the same normalized email.
	ErrDuplicateEmail = errors.New("credential email already exists")
)

// Store persists local credentials. Implementations must lowercase the
// email on both lookup and save so callers never depend on store-level
// collation.
type Store interface {
	FindByEmail(ctx context.Context, email string) (Credential, error)
	Save(ctx context.Context, cred Credential) (Credential, error)
}
