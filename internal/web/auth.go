// ABOUTME: Login, registration, and logout handlers
// ABOUTME: Credentials pass straight through to the backend; nothing is verified locally

package web

import (
	"net/http"

	"github.com/Timaska20/Nesie/internal/api"
)

// handleLoginPage renders the login page
func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to dashboard
	if _, err := h.getSession(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, csrfToken := h.ensureCSRFToken(w, r)
	h.renderLoginPage(w, "", csrfToken)
}

// handleLogin processes login form submission. On success the backend's
// bearer token and resolved identity are stored in a fresh session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, "Invalid form data", csrfToken)
		return
	}

	if !h.validateCSRF(r) {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, "Invalid request, please try again", csrfToken)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, "Username and password required", csrfToken)
		return
	}

	token, err := h.api.Login(r.Context(), username, password)
	if err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, h.errorMessage(err), csrfToken)
		return
	}

	info, err := h.api.UserInfo(r.Context(), token)
	if err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, h.errorMessage(err), csrfToken)
		return
	}

	if err := h.createSession(w, r, token, info); err != nil {
		h.logger.Error("failed to create session", "error", err)
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderLoginPage(w, "An error occurred, please try again", csrfToken)
		return
	}

	h.logger.Info("login successful", "username", username, "is_admin", info.IsAdmin)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleConfirmEmail redeems an email-confirmation token from a mailed
// link. The link is usually followed outside any session, so this stays
// public and lands the visitor on the sign-in page with the outcome.
func (h *Handler) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	_, csrfToken := h.ensureCSRFToken(w, r)
	data := loginData{Title: "Sign In", CSRFToken: csrfToken}

	confirmToken := r.URL.Query().Get("token")
	if confirmToken == "" {
		data.Error = "The confirmation link is missing its token"
	} else if err := h.api.ConfirmEmail(r.Context(), confirmToken); err != nil {
		data.Error = h.errorMessage(err)
	} else {
		data.Notice = "Email confirmed, you can sign in now"
	}

	h.render(w, "login.html", data)
}

// handleRegisterPage renders the signup page
func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.getSession(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, csrfToken := h.ensureCSRFToken(w, r)
	h.renderRegisterPage(w, registerData{CSRFToken: csrfToken})
}

// handleRegister creates an account on the backend, then logs straight in
// with the same credentials so the user lands on the dashboard.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderRegisterPage(w, registerData{Error: "Invalid form data", CSRFToken: csrfToken})
		return
	}

	if !h.validateCSRF(r) {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderRegisterPage(w, registerData{Error: "Invalid request, please try again", CSRFToken: csrfToken})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	fullName := r.FormValue("full_name")

	echo := registerData{Username: username, FullName: fullName}

	if username == "" || password == "" {
		_, csrfToken := h.ensureCSRFToken(w, r)
		echo.Error = "Username and password required"
		echo.CSRFToken = csrfToken
		h.renderRegisterPage(w, echo)
		return
	}

	err := h.api.Register(r.Context(), api.RegisterRequest{
		Username: username,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		echo.Error = h.errorMessage(err)
		echo.CSRFToken = csrfToken
		h.renderRegisterPage(w, echo)
		return
	}

	token, err := h.api.Login(r.Context(), username, password)
	if err != nil {
		// Account exists but auto-login failed; let them try by hand
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	info, err := h.api.UserInfo(r.Context(), token)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.createSession(w, r, token, info); err != nil {
		h.logger.Error("failed to create session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.logger.Info("registration successful", "username", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout ends the current session
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		// Validate CSRF but don't block logout if invalid
		if !h.validateCSRF(r) {
			h.logger.Warn("logout request with invalid CSRF token")
		}
	}

	h.destroySession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
