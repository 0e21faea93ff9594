package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

const userColumns = `id, email, password_hash, role, is_verified, verification_token_hash, verification_expires_at, reset_token_hash, reset_expires_at, created_at, updated_at`

type userRow struct {
	ID                    string
	Email                 string
	PasswordHash          string
	Role                  string
	IsVerified            bool
	VerificationTokenHash sql.NullString
	VerificationExpiresAt sql.NullTime
	ResetTokenHash        sql.NullString
	ResetExpiresAt        sql.NullTime
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Role,
		&ur.IsVerified,
		&ur.VerificationTokenHash,
		&ur.VerificationExpiresAt,
		&ur.ResetTokenHash,
		&ur.ResetExpiresAt,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	u := domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Role:         ur.Role,
		IsVerified:   ur.IsVerified,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
	if ur.VerificationTokenHash.Valid {
		v := ur.VerificationTokenHash.String
		u.VerificationTokenHash = &v
	}
	if ur.VerificationExpiresAt.Valid {
		v := ur.VerificationExpiresAt.Time
		u.VerificationExpiresAt = &v
	}
	if ur.ResetTokenHash.Valid {
		v := ur.ResetTokenHash.String
		u.ResetTokenHash = &v
	}
	if ur.ResetExpiresAt.Valid {
		v := ur.ResetExpiresAt.Time
		u.ResetExpiresAt = &v
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateErr(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}

	const q = `
INSERT INTO users (id, email, password_hash, role, is_verified, verification_token_hash, verification_expires_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.Role, u.IsVerified,
		nullString(u.VerificationTokenHash), nullTime(u.VerificationExpiresAt),
	))
	if err != nil {
		// The unique index on email resolves concurrent registrations; the
		// losing insert surfaces here.
		if isDuplicateErr(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByVerificationDigest(ctx context.Context, digest string, now time.Time) (domain.User, error) {
	if digest == "" {
		return domain.User{}, domain.ErrMissingField("digest")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE verification_token_hash = $1
  AND verification_expires_at > $2
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, digest, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) MarkVerified(ctx context.Context, userID string) error {
	const q = `
UPDATE users
SET is_verified = TRUE,
    verification_token_hash = NULL,
    verification_expires_at = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID)
}

func (r *UserRepo) SetVerificationToken(ctx context.Context, userID, digest string, expiresAt time.Time) error {
	const q = `
UPDATE users
SET verification_token_hash = $2,
    verification_expires_at = $3,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID, digest, expiresAt)
}

func (r *UserRepo) ClearVerificationToken(ctx context.Context, userID string) error {
	const q = `
UPDATE users
SET verification_token_hash = NULL,
    verification_expires_at = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID)
}

func (r *UserRepo) GetByResetDigest(ctx context.Context, digest string, now time.Time) (domain.User, error) {
	if digest == "" {
		return domain.User{}, domain.ErrMissingField("digest")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE reset_token_hash = $1
  AND reset_expires_at > $2
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, digest, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error {
	const q = `
UPDATE users
SET reset_token_hash = $2,
    reset_expires_at = $3,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID, digest, expiresAt)
}

func (r *UserRepo) ClearResetToken(ctx context.Context, userID string) error {
	const q = `
UPDATE users
SET reset_token_hash = NULL,
    reset_expires_at = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID)
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID, newHash)
}

func (r *UserRepo) execOne(ctx context.Context, q string, userID string, args ...any) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	res, err := r.db.ExecContext(ctx, q, append([]any{userID}, args...)...)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
