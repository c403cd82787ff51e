package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/auth"
	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// AuthHandler manages the admin login session.
//
//   - HandleLogin  → verify credentials, set the session cookie
//   - HandleLogout → clear the session cookie
//   - HandleMe     → return the logged-in admin's profile
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies admin credentials and starts a session.
//
// HTTP: POST /api/auth/login
// BODY: {"username": "admin", "password": "..."}
//
// On success the JWT lands in an HttpOnly cookie:
//   - HttpOnly: JavaScript cannot read it (XSS protection)
//   - SameSite=Lax: not sent on cross-site POSTs
//   - Secure should be enabled in production behind HTTPS
//
// Every failure mode (unknown user, wrong password, non-admin role) answers
// the same 401 — the handler adds nothing to what the service reveals.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.auth.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable in production (requires HTTPS)
	})

	writeJSON(w, http.StatusOK, result.User)
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /api/auth/logout
//
// POST, not GET: logout changes state, and GET would be vulnerable to CSRF
// and browser pre-fetching. Being stateless (JWT), "logout" just deletes
// the client-side cookie — the token stays technically valid until expiry,
// but without the cookie the browser can't send it.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // tells the browser to delete the cookie immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the currently authenticated admin's profile. The
// frontend calls it on load to decide whether to show the admin panel.
//
// HTTP: GET /api/auth/me (admin)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	// RequireAuth has already validated the JWT and set the userID. The
	// fallback writeError covers the "route mounted without middleware"
	// mistake.
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
