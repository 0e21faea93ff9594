package postgres

import (
	"context"
	"database/sql"

	"github.com/taskhive/task-service/internal/domain"
)

// EnsureSchema creates the tables on startup if they are missing. The unique
// index on users.email is what makes concurrent duplicate registrations lose
// deterministically.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id                      TEXT PRIMARY KEY,
    email                   TEXT NOT NULL,
    password_hash           TEXT NOT NULL,
    role                    TEXT NOT NULL DEFAULT 'user',
    is_verified             BOOLEAN NOT NULL DEFAULT FALSE,
    verification_token_hash TEXT,
    verification_expires_at TIMESTAMPTZ,
    reset_token_hash        TEXT,
    reset_expires_at        TIMESTAMPTZ,
    created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);

CREATE TABLE IF NOT EXISTS tasks (
    id           TEXT PRIMARY KEY,
    owner_id     TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    due_date     TIMESTAMPTZ,
    priority     TEXT NOT NULL DEFAULT 'medium',
    category     TEXT NOT NULL DEFAULT 'General',
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS tasks_owner_idx ON tasks (owner_id);
CREATE INDEX IF NOT EXISTS users_verification_digest_idx ON users (verification_token_hash);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
