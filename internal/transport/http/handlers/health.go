package handlers

import (
	"net/http"

	"github.com/taskhive/task-service/internal/transport/http/response"
)

// Health reports process liveness. It deliberately does not touch the
// database; a degraded dependency surfaces as 503s on real endpoints.
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
