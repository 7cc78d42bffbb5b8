package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/freezerplan-backend/api/validators"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestID    = 64
)

// RequestID echoes a caller-supplied X-Request-Id, or mints a uuid when the
// header is absent or unusable, and attaches it to the log context.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if clean := validators.SanitizeString(id, maxRequestID); clean == "" || clean != id {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
