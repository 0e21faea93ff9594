package middleware

import (
	"net/http"

	"github.com/taskhive/task-service/internal/domain"
	"github.com/taskhive/task-service/internal/transport/http/response"
)

// RequireRole allows only callers whose role is in the allowed set. It must
// run after RequireAuth; a request without an identity is rejected as
// unauthenticated rather than forbidden.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.WriteError(w, r, domain.ErrTokenMissing())
				return
			}
			if _, ok := set[id.Role]; !ok {
				response.WriteError(w, r, domain.ErrInsufficientRole(id.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
