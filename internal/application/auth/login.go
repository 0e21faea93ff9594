package auth

import (
	"context"

	"github.com/taskhive/task-service/internal/domain"
)

// Login authenticates a user and issues a session token.
// IMPORTANT: unknown email and wrong password produce the identical error
// (avoid user enumeration). The verification check runs only after the
// credentials are confirmed correct, so an unverified account with the right
// password gets the forbidden error, never the credentials one.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)

	if email == "" {
		return LoginResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return LoginResult{}, domain.ErrMissingField("password")
	}
	if !validEmailFormat(email) {
		return LoginResult{}, domain.ErrInvalidEmail()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if !u.IsVerified {
		return LoginResult{}, domain.ErrEmailNotVerified()
	}

	token, err := s.signer.SignSessionToken(u.ID, u.Role, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Token: token}, nil
}
