package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/arcadia-store/arcadia/internal/shared"
)

const (
	defaultLanguage = "en"
	defaultCurrency = "USD"
)

// federatedConsent is the consent default applied to accounts created
// through social sign-in. Product policy: federation implies broader
// default consent than explicit registration.
var federatedConsent = Consent{Marketing: false, Analytics: true, ThirdParty: true}

// Service wraps the identity core's business rules.
type Service struct {
	repo    Repository
	issuer  *Issuer
	revoked *RevocationList
	logger  *slog.Logger
}

// NewService constructs a Service. The revocation list may be nil, in
// which case logout cannot invalidate refresh tokens before expiry.
func NewService(repo Repository, issuer *Issuer, revoked *RevocationList, logger *slog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, revoked: revoked, logger: logger}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Language string
	Currency string
	Consent  *Consent
}

// Register creates a new account and issues its first token pair.
// A taken email surfaces as shared.ErrDuplicate.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, TokenPair, error) {
	lang, err := normalizeLanguage(in.Language)
	if err != nil {
		return nil, TokenPair{}, err
	}
	cur, err := normalizeCurrency(in.Currency)
	if err != nil {
		return nil, TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("auth: hash password: %w", err)
	}

	consent := Consent{}
	if in.Consent != nil {
		consent = *in.Consent
	}

	user, err := s.repo.CreateUser(ctx, NewUser{
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         shared.RoleUser,
		Language:     lang,
		Currency:     cur,
		Consent:      consent,
	})
	if err != nil {
		return nil, TokenPair{}, err
	}
	return s.issue(user)
}

// Login validates email/password credentials and issues a token pair.
// Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, TokenPair{}, shared.ErrInvalidCredentials
	}
	// Federated accounts have no password to compare.
	if user.PasswordHash == "" {
		return nil, TokenPair{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, shared.ErrInvalidCredentials
	}
	s.touchLastLogin(ctx, user.ID)
	return s.issue(user)
}

// FederatedLogin finds or creates the account matching a verified
// provider identity and issues a token pair. Repeated calls with the
// same email never create a second account.
func (s *Service) FederatedLogin(ctx context.Context, id FederatedIdentity) (*User, TokenPair, error) {
	email := normalizeEmail(id.Email)
	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user, err = s.repo.UpdateFederatedProfile(ctx, user.ID, id.Name, id.AvatarURL)
		if err != nil {
			return nil, TokenPair{}, err
		}
	case errors.Is(err, shared.ErrNotFound):
		user, err = s.repo.CreateUser(ctx, NewUser{
			Email:    email,
			Name:     id.Name,
			Role:     shared.RoleUser,
			Language: defaultLanguage,
			Currency: defaultCurrency,
			Avatar:   id.AvatarURL,
			Consent:  federatedConsent,
		})
		if errors.Is(err, shared.ErrDuplicate) {
			// Lost a create race with a concurrent federated login.
			user, err = s.repo.FindByEmail(ctx, email)
		}
		if err != nil {
			return nil, TokenPair{}, err
		}
	default:
		return nil, TokenPair{}, err
	}
	return s.issue(user)
}

// Refresh verifies a refresh token and mints a new pair. Any failure,
// including a vanished user or a revoked token, reports as an invalid
// token so the client falls back to a full login.
func (s *Service) Refresh(ctx context.Context, token string) (*User, TokenPair, error) {
	decoded, err := s.issuer.VerifyRefresh(token)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, decoded.ID)
		if err != nil {
			return nil, TokenPair{}, fmt.Errorf("auth: revocation check: %w", err)
		}
		if revoked {
			return nil, TokenPair{}, shared.ErrInvalidToken
		}
	}
	user, err := s.repo.FindByID(ctx, decoded.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, TokenPair{}, shared.ErrInvalidToken
		}
		return nil, TokenPair{}, err
	}
	return s.issue(user)
}

// Logout revokes the presented refresh token and drops its session
// audit row. Best-effort: an unverifiable token is simply ignored,
// since it can no longer mint anything.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	decoded, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}
	if s.revoked != nil {
		if err := s.revoked.Revoke(ctx, decoded.ID, decoded.ExpiresAt); err != nil {
			s.warn("revoke refresh token", err)
		}
	}
	if err := s.repo.DeleteSession(ctx, decoded.ID); err != nil {
		s.warn("delete session", err)
	}
}

// CurrentUser resolves the account behind a verified identity.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// RecordSession persists the session audit row for an issued pair.
// Failures are logged and never fail the login itself.
func (s *Service) RecordSession(ctx context.Context, pair TokenPair, userID int64, ip, ua string) {
	err := s.repo.CreateSession(ctx, Session{
		ID:        pair.RefreshID,
		UserID:    userID,
		ExpiresAt: pair.RefreshExpiresAt,
		IP:        ip,
		UA:        ua,
	})
	if err != nil {
		s.warn("record session", err)
	}
}

func (s *Service) issue(user *User) (*User, TokenPair, error) {
	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// touchLastLogin updates lastLogin after a successful credential
// check. A failure here must not fail the login.
func (s *Service) touchLastLogin(ctx context.Context, userID int64) {
	if err := s.repo.TouchLastLogin(ctx, userID); err != nil {
		s.warn("touch last login", err)
	}
}

func (s *Service) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeLanguage(raw string) (string, error) {
	if raw == "" {
		return defaultLanguage, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: unknown language %q", shared.ErrValidation, raw)
	}
	return tag.String(), nil
}

func normalizeCurrency(raw string) (string, error) {
	if raw == "" {
		return defaultCurrency, nil
	}
	unit, err := currency.ParseISO(raw)
	if err != nil {
		return "", fmt.Errorf("%w: unknown currency %q", shared.ErrValidation, raw)
	}
	return unit.String(), nil
}
