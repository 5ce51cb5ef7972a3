package response

import (
	"net/http"

	appCtx "github.com/blackout-app/backend/internal/pkg/context"
)

// RequestIDFromRequest prefers the id the middleware stamped into the
// context, falling back to the inbound header.
func RequestIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if v := appCtx.RequestID(r.Context()); v != "" {
		return v
	}
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
