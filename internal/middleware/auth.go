package middleware

import (
	"net/http"
	"strings"

	"filedepot/internal/auth"
	"filedepot/internal/httputil"
)

// publicPaths are served without a bearer token.
var publicPaths = map[string]struct{}{
	"/health": {},
}

// Auth validates the Authorization bearer token on every request and puts
// the authenticated user ID into the request context.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, public := publicPaths[r.URL.Path]; public {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
