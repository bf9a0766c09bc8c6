package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/service"
)

type contextKey string

const (
	SessionKey contextKey = "session"

	// SignInPath is where browser-driven routes are redirected when no
	// valid session is present
	SignInPath = "/auth/signin"
)

// Auth guards a route subtree. Every request must carry a valid,
// non-expired session; an expired access token is refreshed
// transparently when the client also presents its refresh token. A
// missing session or a failed refresh are treated identically. API
// routes answer 401; browser routes redirect to the sign-in page.
func Auth(authService *service.AuthService, redirect bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := bearerToken(r)
			refreshToken := r.Header.Get("X-Refresh-Token")

			session, rotated := authService.SessionFromToken(r.Context(), accessToken, refreshToken)
			if !session.Valid() {
				deny(w, r, redirect)
				return
			}

			if rotated {
				// hand the rotated pair back so the client can store it
				w.Header().Set("X-Access-Token", session.AccessToken)
				w.Header().Set("X-Refresh-Token", session.RefreshToken)
				w.Header().Set("X-Token-Expires", strconv.FormatInt(session.TokenExpires, 10))
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission rejects requests whose session role lacks the
// permission. Must be mounted inside Auth.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				deny(w, r, false)
				return
			}
			if !domain.HasPermission(session.User.Role, permission) {
				writeJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose session role is not in the
// allowed set. Must be mounted inside Auth.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				deny(w, r, false)
				return
			}
			if !allowed[session.User.Role] {
				writeJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession returns the session attached by Auth
func GetSession(ctx context.Context) (*service.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*service.Session)
	return session, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func deny(w http.ResponseWriter, r *http.Request, redirect bool) {
	if redirect {
		http.Redirect(w, r, SignInPath, http.StatusFound)
		return
	}
	writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
