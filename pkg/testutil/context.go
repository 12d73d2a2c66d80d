package testutil

import (
	"net/http"
	"time"

	"lumina/pkg/requestcontext"
)

// WithUser attaches a user principal to the request context, simulating what
// the auth middleware does for an authenticated request.
func WithUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithAdmin attaches an admin principal to the request context.
func WithAdmin(req *http.Request, adminID int64) *http.Request {
	return req.WithContext(requestcontext.WithAdminID(req.Context(), adminID))
}

// WithFixedTime pins the request-scoped clock so timestamps are deterministic.
func WithFixedTime(req *http.Request, at time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), at))
}

// WithClient attaches client metadata the way the metadata middleware would.
func WithClient(req *http.Request, ip, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, userAgent))
}
