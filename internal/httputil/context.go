package httputil

import (
	"context"
	"net/http"
)

// contextKey is unexported so request-scoped values set here cannot collide
// with keys from other packages.
type contextKey string

const userIDKey contextKey = "userID"

// WithUserID returns a shallow copy of the request whose context carries the
// authenticated user ID. The auth middleware calls this once per request.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

// GetUserID reads the authenticated user ID from the request context. It
// returns "" when the request never passed through the auth middleware.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
