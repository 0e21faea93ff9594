package response

import (
	"net/http"

	appctx "github.com/taskhive/task-service/internal/pkg/context"
)

// RequestIDFromContext returns the request id attached by the request-id
// middleware, or an empty string when none is present.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
