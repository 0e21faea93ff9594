package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/taskhive/task-service/internal/domain"
)

// ActionTokenCodec produces one-time action tokens (email verification,
// password reset). The plaintext is shown to the user exactly once; only the
// sha256 digest is ever persisted, so a store compromise cannot yield a
// usable token.
type ActionTokenCodec struct{}

func NewActionTokenCodec() *ActionTokenCodec { return &ActionTokenCodec{} }

const actionTokenBytes = 20

// Generate returns (plaintext, digest). The plaintext goes out-of-band to
// the user; the digest is the stored representation.
func (c *ActionTokenCodec) Generate() (string, string, error) {
	b := make([]byte, actionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", domain.ErrRandomFailed(err)
	}
	plaintext := hex.EncodeToString(b)
	return plaintext, c.Digest(plaintext), nil
}

// Digest recomputes the stored form of a plaintext token. Deterministic so
// lookups can go straight to the persisted digest.
func (c *ActionTokenCodec) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (c *ActionTokenCodec) Matches(plaintext, digest string) bool {
	recomputed := c.Digest(plaintext)
	return subtle.ConstantTimeCompare([]byte(recomputed), []byte(digest)) == 1
}
