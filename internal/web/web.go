// ABOUTME: Web UI package: authentication, session cookies, and route registration
// ABOUTME: Every page is server-rendered; the backend API is the only data source

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Timaska20/Nesie/internal/api"
	"github.com/Timaska20/Nesie/internal/session"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "nesie_session"

	// CSRFCookieName is the name of the CSRF token cookie
	CSRFCookieName = "nesie_csrf"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const sessionContextKey contextKey = "session"
const csrfContextKey contextKey = "csrf_token"

// Config holds web UI configuration
type Config struct {
	// BaseURL is the external URL of this service
	BaseURL string

	// SessionTTL is how long browser sessions last
	SessionTTL time.Duration
}

// Handler serves the web UI. All state lives in the backend; the only
// thing stored locally is the session binding a cookie to a bearer token.
type Handler struct {
	api      *api.Client
	sessions session.Store
	config   Config
	logger   *slog.Logger
}

// New creates a new web UI handler
func New(client *api.Client, sessions session.Store, cfg Config) *Handler {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	return &Handler{
		api:      client,
		sessions: sessions,
		config:   cfg,
		logger:   slog.Default().With("component", "web"),
	}
}

// RegisterRoutes registers all UI routes on the given mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Public routes (no auth required)
	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /register", h.handleRegisterPage)
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("GET /confirm-email", h.handleConfirmEmail)

	// Protected routes (auth required)
	mux.HandleFunc("GET /{$}", h.requireSession(h.handleDashboard))
	mux.HandleFunc("POST /logout", h.requireSession(h.handleLogout))
	mux.HandleFunc("POST /predict", h.requireSession(h.handlePredict))
	mux.HandleFunc("GET /credits", h.requireSession(h.handleCreditsPage))
	mux.HandleFunc("POST /credits", h.requireSession(h.handleApplyCredit))
	mux.HandleFunc("GET /offers", h.requireSession(h.handleOffersPage))
	mux.HandleFunc("GET /profile", h.requireSession(h.handleProfilePage))
	mux.HandleFunc("POST /profile", h.requireSession(h.handleSaveProfile))
	mux.HandleFunc("POST /profile/password", h.requireSession(h.handleUpdatePassword))
	mux.HandleFunc("POST /profile/email", h.requireSession(h.handleUpdateEmail))
	mux.HandleFunc("POST /profile/email/confirm", h.requireSession(h.handleSendConfirmation))

	// Admin routes
	mux.HandleFunc("GET /admin/users", h.requireAdmin(h.handleUsersPage))
	mux.HandleFunc("GET /admin/user", h.requireAdmin(h.handleUserDetail))
	mux.HandleFunc("POST /admin/users/{id}/promote", h.requireAdmin(h.handlePromoteUser))
	mux.HandleFunc("POST /admin/users/{id}/delete", h.requireAdmin(h.handleDeleteUser))
	mux.HandleFunc("POST /admin/users/{id}/credits", h.requireAdmin(h.handleAddCredit))
	mux.HandleFunc("GET /admin/users/{id}/sample", h.requireAdmin(h.handleSampleCredit))
	mux.HandleFunc("POST /admin/credits/{id}/delete", h.requireAdmin(h.handleDeleteCredit))

	h.logger.Info("web routes registered")
}

// requireSession wraps a handler to require an authenticated session.
// Every guarded page reacts to a missing or expired session the same way:
// redirect to /login.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.getSession(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin additionally requires the session's cached admin flag.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.requireSession(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r)
		if !sess.IsAdmin {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// getSession retrieves the session behind the request's cookie
func (h *Handler) getSession(r *http.Request) (*session.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}
	return h.sessions.Get(r.Context(), cookie.Value)
}

// sessionFromContext retrieves the authenticated session from the request context
func sessionFromContext(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*session.Session)
	return sess
}

// getCSRFToken retrieves the CSRF token from the request context
func getCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey).(string)
	return token
}

// ensureCSRFToken generates a CSRF token if not present and adds it to context
func (h *Handler) ensureCSRFToken(w http.ResponseWriter, r *http.Request) (*http.Request, string) {
	cookie, err := r.Cookie(CSRFCookieName)
	if err == nil && cookie.Value != "" {
		ctx := context.WithValue(r.Context(), csrfContextKey, cookie.Value)
		return r.WithContext(ctx), cookie.Value
	}

	token, err := session.NewID()
	if err != nil {
		h.logger.Error("failed to generate CSRF token", "error", err)
		token = "" // Will fail validation, but won't crash
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	ctx := context.WithValue(r.Context(), csrfContextKey, token)
	return r.WithContext(ctx), token
}

// validateCSRF checks the CSRF token from form against cookie
func (h *Handler) validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	formToken := r.FormValue("csrf_token")
	return formToken != "" && formToken == cookie.Value
}

// createSession stores a session for the token and sets the cookie.
// The TTL is clamped to the token's own expiry when the token carries one:
// a session that outlives its token is just a deferred 401.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request, token string, info *api.UserInfo) error {
	id, err := session.NewID()
	if err != nil {
		return err
	}

	ttl := h.config.SessionTTL
	if exp, ok := api.TokenExpiry(token); ok {
		if until := time.Until(exp); until < ttl {
			ttl = until
		}
	}

	sess := &session.Session{
		ID:        id,
		Token:     token,
		UserID:    info.UserID,
		Username:  info.Username,
		IsAdmin:   info.IsAdmin,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := h.sessions.Create(r.Context(), sess); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// destroySession deletes the stored session and clears both cookies
func (h *Handler) destroySession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.sessions.Delete(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// handleBackendError deals with a failed backend call on a guarded page.
// A 401 means the token went stale: the local session is destroyed and the
// browser sent back to /login. Returns true when the response is finished.
func (h *Handler) handleBackendError(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, api.ErrNotAuthenticated) || errors.Is(err, api.ErrMalformedToken) {
		h.logger.Info("backend rejected session token, forcing re-login")
		h.destroySession(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}

// errorMessage turns a backend error into user-facing text. Backend
// {detail} payloads are surfaced verbatim; anything else is logged and
// replaced with a generic message.
func (h *Handler) errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	h.logger.Error("backend call failed", "error", err)
	return "An error occurred, please try again"
}
