package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/arcadia-store/arcadia/internal/federation"
	"github.com/arcadia-store/arcadia/internal/observability"
	"github.com/arcadia-store/arcadia/internal/platform/httpx"
	"github.com/arcadia-store/arcadia/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	verifier  federation.Verifier
	cookies   CookieWriter
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, verifier federation.Verifier, cookies CookieWriter, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		verifier:  verifier,
		cookies:   cookies,
		metrics:   metrics,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. The gate
// protects only /me; the remaining routes must stay reachable for
// anonymous callers.
func (h *Handler) MountRoutes(r chi.Router, gate Middleware) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/google", h.googleLogin)
	r.Post("/refresh", h.refresh)
	r.Post("/logout", h.logout)
	r.Group(func(r chi.Router) {
		r.Use(gate.Authenticate)
		r.Get("/me", h.currentUser)
	})
}

type consentRequest struct {
	Marketing  bool `json:"marketing"`
	Analytics  bool `json:"analytics"`
	ThirdParty bool `json:"thirdParty"`
}

type registerRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Name     string          `json:"name" validate:"required"`
	Language string          `json:"language"`
	Currency string          `json:"currency"`
	Consent  *consentRequest `json:"consent"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type federatedRequest struct {
	Token string `json:"token" validate:"required"`
}

// sessionResponse is the body of every flow that signs a client in.
// The access token rides along for bearer-style clients; cookies
// carry both tokens for browser clients.
type sessionResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	in := RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Language: req.Language,
		Currency: req.Currency,
	}
	if req.Consent != nil {
		in.Consent = &Consent{
			Marketing:  req.Consent.Marketing,
			Analytics:  req.Consent.Analytics,
			ThirdParty: req.Consent.ThirdParty,
		}
	}

	user, pair, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.metrics.RecordAuthAttempt(observability.AuthFlowRegister, false)
		httpx.RespondError(w, err)
		return
	}
	h.metrics.RecordAuthAttempt(observability.AuthFlowRegister, true)
	h.service.RecordSession(r.Context(), pair, user.ID, r.RemoteAddr, r.UserAgent())
	h.cookies.Set(w, pair)
	httpx.JSON(w, http.StatusCreated, sessionResponse{User: user, AccessToken: pair.AccessToken})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuthAttempt(observability.AuthFlowPassword, false)
		httpx.RespondError(w, err)
		return
	}
	h.metrics.RecordAuthAttempt(observability.AuthFlowPassword, true)
	h.service.RecordSession(r.Context(), pair, user.ID, r.RemoteAddr, r.UserAgent())
	h.cookies.Set(w, pair)
	httpx.JSON(w, http.StatusOK, sessionResponse{User: user, AccessToken: pair.AccessToken})
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	var req federatedRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	profile, err := h.verifier.Verify(r.Context(), req.Token)
	if err != nil {
		h.metrics.RecordAuthAttempt(observability.AuthFlowFederated, false)
		httpx.RespondError(w, err)
		return
	}

	user, pair, err := h.service.FederatedLogin(r.Context(), FederatedIdentity{
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		h.metrics.RecordAuthAttempt(observability.AuthFlowFederated, false)
		httpx.RespondError(w, err)
		return
	}
	h.metrics.RecordAuthAttempt(observability.AuthFlowFederated, true)
	h.service.RecordSession(r.Context(), pair, user.ID, r.RemoteAddr, r.UserAgent())
	h.cookies.Set(w, pair)
	httpx.JSON(w, http.StatusOK, sessionResponse{User: user, AccessToken: pair.AccessToken})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.metrics.RecordAuthAttempt(observability.AuthFlowRefresh, false)
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	user, pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.metrics.RecordAuthAttempt(observability.AuthFlowRefresh, false)
		httpx.RespondError(w, err)
		return
	}
	h.metrics.RecordAuthAttempt(observability.AuthFlowRefresh, true)
	h.service.RecordSession(r.Context(), pair, user.ID, r.RemoteAddr, r.UserAgent())
	h.cookies.Set(w, pair)
	httpx.JSON(w, http.StatusOK, map[string]string{"accessToken": pair.AccessToken})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		h.service.Logout(r.Context(), cookie.Value)
	}
	h.cookies.Clear(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) decode(r *http.Request, target any) error {
	if err := httpx.DecodeJSON(r, target); err != nil {
		return err
	}
	if err := h.validator.Struct(target); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
			}
		}
		if len(fields) == 0 {
			return shared.ErrValidation
		}
		return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}
