package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arcadia-store/arcadia/internal/auth"
	"github.com/arcadia-store/arcadia/internal/shared"
)

func issuePair(t *testing.T, role shared.Role) auth.TokenPair {
	t.Helper()
	pair, err := newIssuer(t).Issue(&auth.User{ID: 9, Role: role})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return pair
}

func TestGateRejectsMissingToken(t *testing.T) {
	t.Parallel()

	gate := auth.Middleware{Issuer: newIssuer(t)}
	calls := 0
	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if calls != 0 {
		t.Fatalf("downstream handler must not run, got %d calls", calls)
	}
}

func TestGateAcceptsBearerHeader(t *testing.T) {
	t.Parallel()

	gate := auth.Middleware{Issuer: newIssuer(t)}
	pair := issuePair(t, shared.RoleUser)

	var got shared.Identity
	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = shared.IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got.UserID != 9 || got.Role != shared.RoleUser {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestGateAcceptsCookie(t *testing.T) {
	t.Parallel()

	gate := auth.Middleware{Issuer: newIssuer(t)}
	pair := issuePair(t, shared.RoleUser)

	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: pair.AccessToken})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestGateHeaderTakesPrecedence(t *testing.T) {
	t.Parallel()

	gate := auth.Middleware{Issuer: newIssuer(t)}
	pair := issuePair(t, shared.RoleUser)

	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Valid header, garbage cookie: header must win.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "garbage"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	// Garbage header, valid cookie: the header is still authoritative.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: pair.AccessToken})
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestGateRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	short, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Nanosecond,
		RefreshTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	pair, err := short.Issue(&auth.User{ID: 9, Role: shared.RoleUser})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gate := auth.Middleware{Issuer: short}
	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	gate := auth.Middleware{Issuer: newIssuer(t)}
	protected := gate.Authenticate(
		gate.RequireRole(shared.RoleAdmin, shared.RoleOperator)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		),
	)

	// USER role is authenticated but outside the allow-list.
	userPair := issuePair(t, shared.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userPair.AccessToken)
	res := httptest.NewRecorder()
	protected.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d", res.Code)
	}

	// No token at all stays a 401, distinct from the role rejection.
	res = httptest.NewRecorder()
	protected.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.Code)
	}

	operatorPair := issuePair(t, shared.RoleOperator)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+operatorPair.AccessToken)
	res = httptest.NewRecorder()
	protected.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for OPERATOR role, got %d", res.Code)
	}
}
