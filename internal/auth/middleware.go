package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie carrying the admin's JWT.
const SessionCookie = "session"

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. With a plain string key, any
// package that knows the string could read or shadow the value. A
// package-private type means only this package can touch userID values in
// the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is the middleware guarding every admin route.
//
// It reads the JWT from the session cookie, validates it, and stores the
// userID in the request context. Missing or invalid token → 401 and the
// request chain stops. The validation runs on every single admin call; the
// client never gets to assert "I'm logged in" on its own.
//
// The cookie is HttpOnly, so JavaScript cannot read the token (XSS
// protection), and SameSite=Lax keeps it off cross-site POSTs.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				// http.Error would force text/plain; the API always answers JSON.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated admin's user ID from the
// request context. Returns ("", false) if the request carried no valid
// session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID reads the session cookie and validates the JWT inside it.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie — no session at all
		return "", err
	}

	return tokens.Validate(cookie.Value)
}
