package auth

import (
	"time"

	"github.com/arcadia-store/arcadia/internal/shared"
)

// User represents a storefront account. An empty PasswordHash means
// the account was created through federated sign-in.
type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Role         shared.Role `json:"role"`
	Language     string      `json:"language"`
	Currency     string      `json:"currency"`
	Avatar       string      `json:"avatar,omitempty"`
	LastLogin    *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	Consent      *Consent    `json:"consent,omitempty"`
}

// Consent records per-user opt-in flags. Exactly one row exists per
// user, created and deleted together with it.
type Consent struct {
	Marketing  bool `json:"marketing"`
	Analytics  bool `json:"analytics"`
	ThirdParty bool `json:"thirdParty"`
}

// TokenPair is a freshly issued access/refresh credential pair. The
// refresh token's id and expiry are carried for session auditing and
// revocation.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshID        string
	RefreshExpiresAt time.Time
}

// FederatedIdentity is the verified profile returned by the identity
// provider.
type FederatedIdentity struct {
	Email     string
	Name      string
	AvatarURL string
}
