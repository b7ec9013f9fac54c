// Package federation validates third-party identity tokens.
package federation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/arcadia-store/arcadia/internal/shared"
)

// GoogleIssuerURL is the OIDC issuer for Google sign-in tokens.
const GoogleIssuerURL = "https://accounts.google.com"

// Profile is the verified identity returned by the provider.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
}

// Verifier validates a provider-issued identity token and extracts
// the caller's profile.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Profile, error)
}

// GoogleVerifier validates Google ID tokens against the provider's
// published keys, checking the audience matches this application's
// registered client id. Constructed once at boot; provider discovery
// happens during construction.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
	logger   *slog.Logger
}

// NewGoogleVerifier performs provider discovery and builds a verifier
// bound to the given OAuth client id.
func NewGoogleVerifier(ctx context.Context, clientID string, logger *slog.Logger) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("federation: client id must be provided")
	}
	provider, err := oidc.NewProvider(ctx, GoogleIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("federation: provider discovery: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		logger:   logger,
	}, nil
}

// Verify checks the token's signature, expiry and audience. Any
// failure, including an unreachable provider, reports as an invalid
// federated token; the caller treats it as a client-facing 401 and
// never retries.
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (Profile, error) {
	idToken, err := g.verifier.Verify(ctx, rawToken)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("google token rejected", slog.Any("error", err))
		}
		return Profile{}, shared.ErrInvalidFederatedToken
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		return Profile{}, shared.ErrInvalidFederatedToken
	}
	return Profile{Email: claims.Email, Name: claims.Name, AvatarURL: claims.Picture}, nil
}

// Disabled rejects every federated login. Installed when no provider
// client id is configured, so the route degrades to a clean 401.
type Disabled struct{}

// Verify always fails.
func (Disabled) Verify(context.Context, string) (Profile, error) {
	return Profile{}, shared.ErrInvalidFederatedToken
}

var (
	_ Verifier = (*GoogleVerifier)(nil)
	_ Verifier = Disabled{}
)
