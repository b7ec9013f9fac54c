package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/arcadia-store/arcadia/internal/auth"
	"github.com/arcadia-store/arcadia/internal/shared"
)

func newIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	return issuer
}

func TestIssueAndVerifyPair(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t)
	user := &auth.User{ID: 42, Role: shared.RoleOperator}

	pair, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}
	if pair.RefreshID == "" {
		t.Fatalf("expected refresh token id")
	}

	identity, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if identity.UserID != 42 || identity.Role != shared.RoleOperator {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	refresh, err := issuer.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh error: %v", err)
	}
	if refresh.UserID != 42 || refresh.ID != pair.RefreshID {
		t.Fatalf("unexpected refresh claims: %+v", refresh)
	}
}

func TestVerifyAccessRejectsRefreshToken(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t)
	pair, err := issuer.Issue(&auth.User{ID: 1, Role: shared.RoleUser})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Signed with the other secret; must fail as invalid, not decode.
	if _, err := issuer.VerifyAccess(pair.RefreshToken); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := issuer.VerifyRefresh(pair.AccessToken); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccessExpired(t *testing.T) {
	t.Parallel()

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Nanosecond,
		RefreshTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	pair, err := issuer.Issue(&auth.User{ID: 7, Role: shared.RoleUser})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	time.Sleep(time.Millisecond)

	_, err = issuer.VerifyAccess(pair.AccessToken)
	if !errors.Is(err, shared.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	// Expiry is still a member of the invalid-token family.
	if !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected expiry to wrap ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccessMalformed(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t)
	if _, err := issuer.VerifyAccess("not.a.jwt"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewIssuerRejectsSharedSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("same"),
		RefreshSecret: []byte("same"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	if err == nil {
		t.Fatalf("expected error for identical secrets")
	}
}

func TestNewIssuerRejectsInvertedTTLs(t *testing.T) {
	t.Parallel()

	_, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("a"),
		RefreshSecret: []byte("b"),
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Minute,
	})
	if err == nil {
		t.Fatalf("expected error for access TTL above refresh TTL")
	}
}
