package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
)

// LoginPath is where browser navigations without a session are sent.
const LoginPath = "/login"

type sessionKey struct{}

// WithSession returns a copy of ctx carrying claims.
func WithSession(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, sessionKey{}, claims)
}

// SessionFrom returns the claims stored by the middleware.
func SessionFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(*Claims)
	return claims, ok && claims != nil
}

// SetSessionCookie writes the session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads the session cookie, falling back to a bearer token.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Middleware rejects requests without a valid session. Browser navigations
// are redirected to LoginPath, everything else gets 401 JSON.
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := i.Parse(TokenFromRequest(r))
		if err != nil {
			logging.Debug("session rejected",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			if wantsHTML(r) {
				http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(model.ErrorResponse{
				Error: "Unauthorized",
				Code:  "UNAUTHORIZED",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims)))
	})
}

func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
