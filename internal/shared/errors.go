package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique-constraint conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure. The message is
	// shared between unknown-email and wrong-password cases.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers mis-signed, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is the expiry sub-case of ErrInvalidToken so
	// clients can trigger a refresh specifically.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
	// ErrInvalidFederatedToken indicates the identity provider
	// rejected the token or was unreachable.
	ErrInvalidFederatedToken = errors.New("invalid federated token")
	// ErrUnauthorized indicates a missing or unverifiable credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated caller with an
	// insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates malformed request input.
	ErrValidation = errors.New("validation failed")
)
