package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/task-service/internal/domain"
)

// registerVerified is the common setup for login tests.
func registerVerified(t *testing.T, env *testEnv, email, password string) domain.User {
	t.Helper()
	u, token := env.register(t, email, password, "")
	if err := env.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	return u
}

func TestLogin_HappyPath(t *testing.T) {
	env := newTestEnv()
	u := registerVerified(t, env, "alice@example.com", "secret123")

	res, err := env.svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a session token")
	}
	if res.User.ID != u.ID {
		t.Fatalf("user id = %q, want %q", res.User.ID, u.ID)
	}
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	registerVerified(t, env, "bob@example.com", "secret123")

	if _, err := env.svc.Login(context.Background(), "BOB@Example.com", "secret123"); err != nil {
		t.Fatalf("login with different case: %v", err)
	}
}

func TestLogin_EnumerationSafe(t *testing.T) {
	env := newTestEnv()
	registerVerified(t, env, "carol@example.com", "secret123")
	ctx := context.Background()

	_, errUnknown := env.svc.Login(ctx, "ghost@example.com", "secret123")
	_, errWrongPw := env.svc.Login(ctx, "carol@example.com", "wrong-password")

	requireDomainCode(t, errUnknown, "invalid_credentials")
	requireDomainCode(t, errWrongPw, "invalid_credentials")

	// Identical messages: a caller cannot tell which case they hit.
	var deA, deB *domain.Error
	errors.As(errUnknown, &deA)
	errors.As(errWrongPw, &deB)
	if deA.Message != deB.Message {
		t.Fatalf("messages differ: %q vs %q", deA.Message, deB.Message)
	}
}

func TestLogin_UnverifiedAfterCorrectCredentials(t *testing.T) {
	env := newTestEnv()
	env.register(t, "dave@example.com", "secret123", "")
	ctx := context.Background()

	// Wrong password on an unverified account is still a credentials error;
	// the verified check must not leak before the credentials are confirmed.
	_, err := env.svc.Login(ctx, "dave@example.com", "wrong-password")
	requireDomainCode(t, err, "invalid_credentials")

	_, err = env.svc.Login(ctx, "dave@example.com", "secret123")
	requireDomainCode(t, err, "email_not_verified")
}

func TestLogin_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Login(ctx, "", "secret123")
	requireDomainCode(t, err, "missing_field")

	_, err = env.svc.Login(ctx, "erin@example.com", "")
	requireDomainCode(t, err, "missing_field")

	_, err = env.svc.Login(ctx, "not-an-email", "secret123")
	requireDomainCode(t, err, "invalid_email")
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv()
	u := registerVerified(t, env, "frank@example.com", "secret123")
	ctx := context.Background()

	got, err := env.svc.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "frank@example.com" {
		t.Fatalf("email = %q", got.Email)
	}

	_, err = env.svc.GetUserByID(ctx, "missing")
	requireDomainCode(t, err, "user_not_found")
}
