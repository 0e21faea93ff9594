package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// VerifyEmail consumes a verification token and marks the account verified.
// The lookup goes by digest plus an unexpired-deadline filter, so an expired
// token and a wrong token are indistinguishable to the caller.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}

	digest := s.tokens.Digest(token)

	u, err := s.users.GetByVerificationDigest(ctx, digest, time.Now())
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindInfrastructure {
			return err
		}
		return domain.ErrVerificationTokenInvalid()
	}

	// Verified + token fields cleared in one update: the token is one-time.
	return s.users.MarkVerified(ctx, u.ID)
}

// ResendVerification issues a fresh token for an unverified account.
// IMPORTANT: non-enumerating - unknown or already-verified emails succeed
// silently.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if !validEmailFormat(email) {
		return domain.ErrInvalidEmail()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if u.IsVerified {
		return nil
	}

	plaintext, digest, err := s.tokens.Generate()
	if err != nil {
		return err
	}

	if err := s.users.SetVerificationToken(ctx, u.ID, digest, time.Now().Add(s.verifyTokenTTL)); err != nil {
		return err
	}

	if err := s.mail.SendVerifyEmail(ctx, u.Email, s.verifyURL(plaintext)); err != nil {
		_ = s.users.ClearVerificationToken(ctx, u.ID)
		return domain.ErrMailDispatchFailed(err)
	}
	return nil
}
