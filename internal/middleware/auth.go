package middleware

import (
	"net/http"
	"strings"

	"registratur/internal/auth"
	"registratur/internal/domain/models"
	"registratur/internal/httputil"
)

// AuthMiddleware verifies the Bearer token on every request except /health
// and stores the caller identity in the request context. A nil verifier
// (dev mode without a configured JWKS URL) falls back to a fixed dev identity;
// main logs a loud warning when that path is taken.
func AuthMiddleware(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			if verifier == nil {
				identity := &models.Identity{
					UserID:      "dev-user",
					DisplayName: "Dev User",
					Role:        "attorney_general",
				}
				next.ServeHTTP(w, httputil.WithIdentity(r, identity))
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			identity := &models.Identity{
				UserID:      claims.GetUserID(),
				DisplayName: claims.Name,
				Role:        claims.Role,
			}
			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}
