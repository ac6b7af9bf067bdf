package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/amiramtracker/backend/internal/models"
)

const sessionKey contextKey = "session"

// AccessTokenValidator validates an access token and returns the user id and email
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (int, string, error)
}

// AuthMiddleware validates the JWT access token and stores the session in the request context
func AuthMiddleware(validator AccessTokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, email, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithSession(r.Context(), models.Session{UserID: userID, Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the token from the Authorization header, then from the access_token cookie
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

// WithSession returns a copy of ctx carrying the session.
// The user id is also recorded on the access log entry of the request.
func WithSession(ctx context.Context, session models.Session) context.Context {
	if trace := traceFrom(ctx); trace != nil {
		trace.userID = session.UserID
	}
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession retrieves the session from context
func GetSession(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(models.Session)
	return session, ok
}
