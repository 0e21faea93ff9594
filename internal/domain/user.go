package domain

import "time"

// User is the account record. VerificationTokenHash and VerificationExpiresAt
// are either both set (a verification is pending) or both nil. The same
// pairing invariant holds for the password-reset fields.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool

	VerificationTokenHash *string
	VerificationExpiresAt *time.Time

	ResetTokenHash *string
	ResetExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
