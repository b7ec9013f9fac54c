package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-store/arcadia/internal/auth"
	"github.com/arcadia-store/arcadia/internal/shared"
	"github.com/arcadia-store/arcadia/internal/users"
)

type stubRepo struct {
	users     []users.User
	roleCalls int
	lastRole  shared.Role
}

func (s *stubRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.users, nil
}

func (s *stubRepo) UpdateRole(ctx context.Context, id int64, role shared.Role) error {
	for _, u := range s.users {
		if u.ID == id {
			s.roleCalls++
			s.lastRole = role
			return nil
		}
	}
	return shared.ErrNotFound
}

type env struct {
	router chi.Router
	repo   *stubRepo
	issuer *auth.Issuer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	repo := &stubRepo{users: []users.User{
		{ID: 1, Email: "a@x.com", Name: "Ann", Role: shared.RoleUser},
	}}
	handler := users.NewHandler(nil, users.NewService(repo), auth.Middleware{Issuer: issuer})
	router := chi.NewRouter()
	router.Route("/users", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return &env{router: router, repo: repo, issuer: issuer}
}

func (e *env) do(t *testing.T, method, path, body string, role shared.Role) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		pair, err := e.issuer.Issue(&auth.User{ID: 99, Role: role})
		if err != nil {
			t.Fatalf("Issue error: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	res := httptest.NewRecorder()
	e.router.ServeHTTP(res, req)
	return res
}

func TestListUsersRequiresElevatedRole(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	if res := env.do(t, http.MethodGet, "/users/", "", ""); res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.Code)
	}
	if res := env.do(t, http.MethodGet, "/users/", "", shared.RoleUser); res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER, got %d", res.Code)
	}
	res := env.do(t, http.MethodGet, "/users/", "", shared.RoleOperator)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for OPERATOR, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "a@x.com") {
		t.Fatalf("expected listed user in body")
	}
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	// Operators can read but not mutate roles.
	if res := env.do(t, http.MethodPut, "/users/1/role", `{"role":"OPERATOR"}`, shared.RoleOperator); res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for OPERATOR, got %d", res.Code)
	}

	res := env.do(t, http.MethodPut, "/users/1/role", `{"role":"OPERATOR"}`, shared.RoleAdmin)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN, got %d", res.Code)
	}
	if env.repo.roleCalls != 1 || env.repo.lastRole != shared.RoleOperator {
		t.Fatalf("role update not applied: calls=%d role=%q", env.repo.roleCalls, env.repo.lastRole)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	if res := env.do(t, http.MethodPut, "/users/1/role", `{"role":"ROOT"}`, shared.RoleAdmin); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", res.Code)
	}
	if res := env.do(t, http.MethodPut, "/users/abc/role", `{"role":"ADMIN"}`, shared.RoleAdmin); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", res.Code)
	}
	if res := env.do(t, http.MethodPut, "/users/42/role", `{"role":"ADMIN"}`, shared.RoleAdmin); res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", res.Code)
	}
}
