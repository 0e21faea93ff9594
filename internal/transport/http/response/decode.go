package response

import (
	"encoding/json"
	"net/http"

	"github.com/taskhive/task-service/internal/domain"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON reads and decodes a JSON request body into dst. Unknown fields
// are rejected so typos surface as 400s instead of being silently dropped.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
