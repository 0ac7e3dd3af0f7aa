package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/leader-akash/pizza-craft/pkg/logger"
)

// CartSession binds every request to a cart session. Clients carry the id in
// the configured header; a request without one gets a fresh id, echoed back
// so the client can persist it.
func CartSession(header string, logg *logger.Logger) func(http.Handler) http.Handler {
	if strings.TrimSpace(header) == "" {
		header = "X-Cart-Session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(header))
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(header, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
