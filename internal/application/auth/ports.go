package auth

import (
	"context"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.

The store owns the email uniqueness invariant (unique index); a race between
two concurrent registrations must surface as the conflict error on the
second Create.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByVerificationDigest resolves a pending verification by stored
	// digest, filtered to deadlines strictly after now. Expired and unknown
	// digests are both a not-found.
	GetByVerificationDigest(ctx context.Context, digest string, now time.Time) (domain.User, error)

	// MarkVerified sets is_verified and clears both verification-token
	// fields in one atomic update (one-time use).
	MarkVerified(ctx context.Context, userID string) error

	SetVerificationToken(ctx context.Context, userID, digest string, expiresAt time.Time) error
	ClearVerificationToken(ctx context.Context, userID string) error

	GetByResetDigest(ctx context.Context, digest string, now time.Time) (domain.User, error)
	SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignSessionToken(userID string, role string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
ActionTokens
------------
One-time action tokens for email verification and password reset.
Generate returns the plaintext (sent out-of-band) and the digest (the only
form the store ever holds).
*/
type ActionTokens interface {
	Generate() (plaintext, digest string, err error)
	Digest(plaintext string) string
}

/*
MailSender
----------
External mail collaborator. Dispatch is fire-and-await inside the request;
a failure after the account row is committed triggers the compensating
token-clear rather than a rollback.
*/
type MailSender interface {
	SendVerifyEmail(ctx context.Context, toEmail, url string) error
	SendPasswordReset(ctx context.Context, toEmail, url string) error
}
