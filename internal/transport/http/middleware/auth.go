package middleware

import (
	"net/http"
	"strings"

	"github.com/taskhive/task-service/internal/application/auth"
	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/domain"
	"github.com/taskhive/task-service/internal/transport/http/response"
)

// Authenticator guards routes that require a valid session. It verifies the
// bearer token, then re-fetches the user so revoked accounts and stale role
// claims are caught on every request.
type Authenticator struct {
	Signer auth.TokenSigner
	Users  auth.UserRepo
}

func NewAuthenticator(signer auth.TokenSigner, users auth.UserRepo) *Authenticator {
	return &Authenticator{Signer: signer, Users: users}
}

func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}

		claims, err := a.Signer.VerifySessionToken(raw)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}

		u, err := a.Users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			// The token was valid but the account no longer resolves.
			response.WriteError(w, r, domain.ErrTokenInvalid())
			return
		}
		if !u.IsVerified {
			response.WriteError(w, r, domain.ErrEmailNotVerified())
			return
		}

		// Role comes from the row, not the claim, so demotions apply
		// without waiting for token expiry.
		ctx := WithIdentity(r.Context(), task.Identity{ID: u.ID, Role: u.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", domain.ErrTokenMissing()
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", domain.ErrTokenMissing()
	}
	return parts[1], nil
}
