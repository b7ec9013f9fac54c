package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/arcadia-store/arcadia/internal/platform/httpx"
	"github.com/arcadia-store/arcadia/internal/shared"
)

// Middleware is the authorization gate protecting collaborator
// routes. It accepts the access token as a bearer header or as the
// accessToken cookie; the header wins when both are present.
type Middleware struct {
	Issuer *Issuer
	Logger *slog.Logger
}

// Authenticate verifies the access token and attaches the resolved
// identity to the request context. Requests without a valid token are
// rejected before any downstream handler runs.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		identity, err := m.Issuer.VerifyAccess(token)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated callers whose role is outside the
// allow-list. It only ever runs behind Authenticate and never accepts
// a token on its own.
func (m Middleware) RequireRole(allowed ...shared.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			if !identity.Role.In(allowed...) {
				if m.Logger != nil {
					m.Logger.Warn("role rejected",
						slog.Int64("user_id", identity.UserID),
						slog.String("role", string(identity.Role)),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
