package memory

import (
	"context"
	"testing"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

func seedUser(t *testing.T, r *UserRepo, id, email string) domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
		Role:         string(domain.RoleUser),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserRepo_CreateAndLookup(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	seedUser(t, r, "u1", "alice@example.com")

	byEmail, err := r.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	byID, err := r.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byEmail.ID != byID.ID {
		t.Fatal("lookups disagree")
	}

	if _, err := r.GetByEmail(ctx, "ghost@example.com"); !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	r := NewUserRepo()

	seedUser(t, r, "u1", "alice@example.com")

	_, err := r.Create(context.Background(), domain.User{
		ID:    "u2",
		Email: "alice@example.com",
	})
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected email_already_exists, got %v", err)
	}
}

func TestUserRepo_VerificationDigestLifecycle(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	u := seedUser(t, r, "u1", "alice@example.com")

	now := time.Now()
	if err := r.SetVerificationToken(ctx, u.ID, "digest-1", now.Add(15*time.Minute)); err != nil {
		t.Fatalf("set token: %v", err)
	}

	got, err := r.GetByVerificationDigest(ctx, "digest-1", now)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %q", got.ID)
	}

	// Past the deadline the same digest no longer resolves.
	if _, err := r.GetByVerificationDigest(ctx, "digest-1", now.Add(16*time.Minute)); !domain.Is(err, "user_not_found") {
		t.Fatalf("expired digest should miss, got %v", err)
	}

	if err := r.MarkVerified(ctx, u.ID); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	got, _ = r.GetByID(ctx, u.ID)
	if !got.IsVerified {
		t.Fatal("user should be verified")
	}
	if got.VerificationTokenHash != nil || got.VerificationExpiresAt != nil {
		t.Fatal("token fields should be cleared atomically with verify")
	}

	if _, err := r.GetByVerificationDigest(ctx, "digest-1", now); !domain.Is(err, "user_not_found") {
		t.Fatalf("consumed digest should miss, got %v", err)
	}
}

func TestUserRepo_ResetDigestLifecycle(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	u := seedUser(t, r, "u1", "alice@example.com")

	now := time.Now()
	if err := r.SetResetToken(ctx, u.ID, "digest-r", now.Add(15*time.Minute)); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if _, err := r.GetByResetDigest(ctx, "digest-r", now); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if err := r.UpdatePasswordHash(ctx, u.ID, "new-hash"); err != nil {
		t.Fatalf("update hash: %v", err)
	}
	if err := r.ClearResetToken(ctx, u.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, _ := r.GetByID(ctx, u.ID)
	if got.PasswordHash != "new-hash" {
		t.Fatalf("hash = %q", got.PasswordHash)
	}
	if got.ResetTokenHash != nil {
		t.Fatal("reset token should be cleared")
	}
	if _, err := r.GetByResetDigest(ctx, "digest-r", now); !domain.Is(err, "user_not_found") {
		t.Fatalf("cleared digest should miss, got %v", err)
	}
}
