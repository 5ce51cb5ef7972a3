package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/blackout-app/backend/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID adopts the caller's X-Request-Id when it looks sane, otherwise
// mints one. The id is echoed back and stored in the request context for
// access logs and error envelopes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := sanitizeRequestID(r.Header.Get(HeaderXRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(appCtx.WithRequestID(r.Context(), reqID)))
	})
}

// sanitizeRequestID rejects ids that would pollute logs: overlong values or
// anything outside the usual token charset.
func sanitizeRequestID(id string) string {
	if len(id) == 0 || len(id) > 64 {
		return ""
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return ""
		}
	}
	return id
}
