package auth

import (
	"context"
	"strings"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// RequestPasswordReset generates a one-time reset token and mails the link.
// IMPORTANT: non-enumerating - unknown emails succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
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

	plaintext, digest, err := s.tokens.Generate()
	if err != nil {
		return err
	}

	if err := s.users.SetResetToken(ctx, u.ID, digest, time.Now().Add(s.resetTokenTTL)); err != nil {
		return err
	}

	if err := s.mail.SendPasswordReset(ctx, u.Email, s.resetURL(plaintext)); err != nil {
		_ = s.users.ClearResetToken(ctx, u.ID)
		return domain.ErrMailDispatchFailed(err)
	}
	return nil
}

// ResetPassword consumes a reset token and installs the new password hash.
// Same digest+deadline lookup as email verification: wrong and expired
// tokens are indistinguishable.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if newPassword == "" {
		return domain.ErrMissingField("password")
	}
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword()
	}

	u, err := s.users.GetByResetDigest(ctx, s.tokens.Digest(token), time.Now())
	if err != nil {
		return domain.ErrResetTokenInvalid()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}
	return s.users.ClearResetToken(ctx, u.ID)
}
