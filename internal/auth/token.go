package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arcadia-store/arcadia/internal/shared"
)

// accessClaims is the signed payload of an access token.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

// refreshClaims is the signed payload of a refresh token.
type refreshClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// IssuerConfig holds the two signing secrets and TTLs. The secrets
// must differ so possession of one never allows forging the other.
type IssuerConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Issuer creates and verifies signed token pairs. Issuance is a pure
// computation; no I/O is involved.
type Issuer struct {
	cfg IssuerConfig
}

// NewIssuer constructs an Issuer.
func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("auth: token secrets must be provided")
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, errors.New("auth: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= cfg.AccessTTL {
		return nil, errors.New("auth: access TTL must be positive and below refresh TTL")
	}
	return &Issuer{cfg: cfg}, nil
}

// AccessTTL reports the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.cfg.AccessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.cfg.RefreshTTL }

// Issue mints a new access/refresh pair for the user.
func (i *Issuer) Issue(user *User) (TokenPair, error) {
	now := time.Now()
	refreshID := uuid.NewString()
	refreshExpiry := now.Add(i.cfg.RefreshTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTTL)),
		},
		UserID: user.ID,
		Role:   string(user.Role),
	})
	accessToken, err := access.SignedString(i.cfg.AccessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
		},
		UserID: user.ID,
	})
	refreshToken, err := refresh.SignedString(i.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshID:        refreshID,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// VerifyAccess validates an access token and returns the identity it
// carries.
func (i *Issuer) VerifyAccess(token string) (shared.Identity, error) {
	claims := &accessClaims{}
	if err := i.parse(token, claims, i.cfg.AccessSecret); err != nil {
		return shared.Identity{}, err
	}
	role, err := shared.ParseRole(claims.Role)
	if err != nil {
		return shared.Identity{}, shared.ErrInvalidToken
	}
	return shared.Identity{UserID: claims.UserID, Role: role}, nil
}

// RefreshToken is the decoded view of a verified refresh token.
type RefreshToken struct {
	UserID    int64
	ID        string
	ExpiresAt time.Time
}

// VerifyRefresh validates a refresh token.
func (i *Issuer) VerifyRefresh(token string) (RefreshToken, error) {
	claims := &refreshClaims{}
	if err := i.parse(token, claims, i.cfg.RefreshSecret); err != nil {
		return RefreshToken{}, err
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return RefreshToken{UserID: claims.UserID, ID: claims.ID, ExpiresAt: expiresAt}, nil
}

func (i *Issuer) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.ErrTokenExpired
		}
		return shared.ErrInvalidToken
	}
	if !parsed.Valid {
		return shared.ErrInvalidToken
	}
	return nil
}
