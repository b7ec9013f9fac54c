package auth

import (
	"net/http"
	"time"
)

// Cookie names shared with browser clients.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieWriter sets and clears the paired token cookies. The access
// token is additionally returned in response bodies so bearer-style
// clients work without cookies.
type CookieWriter struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Secure is disabled only for local development.
	Secure bool
}

// Set writes both token cookies, each with a max-age matching its
// token's TTL.
func (c CookieWriter) Set(w http.ResponseWriter, pair TokenPair) {
	http.SetCookie(w, c.cookie(AccessTokenCookie, pair.AccessToken, c.AccessTTL))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, pair.RefreshToken, c.RefreshTTL))
}

// Clear instructs the client to drop both cookies. This does not
// invalidate tokens server-side; see the revocation list for that.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.expired(AccessTokenCookie))
	http.SetCookie(w, c.expired(RefreshTokenCookie))
}

func (c CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (c CookieWriter) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
