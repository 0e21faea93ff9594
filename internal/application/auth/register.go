package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/task-service/internal/domain"
)

// Register creates an unverified account and dispatches the verification
// email within the request. If the mail collaborator fails after the row is
// committed, the pending verification token is cleared (compensating action,
// not a rollback) so no stale action token stays valid.
func (s *Service) Register(ctx context.Context, email, password, requestedRole string) (RegisterResult, error) {
	email = normalizeEmail(email)

	if email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}
	if !validEmailFormat(email) {
		return RegisterResult{}, domain.ErrInvalidEmail()
	}
	if len(password) < 6 {
		return RegisterResult{}, domain.ErrWeakPassword()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	plaintext, digest, err := s.tokens.Generate()
	if err != nil {
		return RegisterResult{}, err
	}

	expiresAt := time.Now().Add(s.verifyTokenTTL)
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		// No authorization gate on role elevation at registration.
		Role:                  domain.NormalizeRequestedRole(requestedRole),
		IsVerified:            false,
		VerificationTokenHash: &digest,
		VerificationExpiresAt: &expiresAt,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	if err := s.mail.SendVerifyEmail(ctx, created.Email, s.verifyURL(plaintext)); err != nil {
		// Account exists; only the action token is rolled back.
		_ = s.users.ClearVerificationToken(ctx, created.ID)
		return RegisterResult{}, domain.ErrMailDispatchFailed(err)
	}

	return RegisterResult{User: created}, nil
}
