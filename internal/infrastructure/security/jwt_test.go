package security

import (
	"testing"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

func TestJWTSigner_SignAndVerify(t *testing.T) {
	s := NewJWTSigner("test-secret", "task-service")

	tok, err := s.SignSessionToken("user-1", string(domain.RoleUser), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := s.VerifySessionToken(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("user id = %q", claims.UserID)
	}
	if claims.Role != string(domain.RoleUser) {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.Exp.Before(time.Now()) {
		t.Fatal("expiry should be in the future")
	}
}

func TestJWTSigner_WrongSecretRejected(t *testing.T) {
	signer := NewJWTSigner("secret-a", "task-service")
	other := NewJWTSigner("secret-b", "task-service")

	tok, err := signer.SignSessionToken("user-1", string(domain.RoleUser), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := other.VerifySessionToken(tok); !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}

func TestJWTSigner_ExpiredRejected(t *testing.T) {
	s := NewJWTSigner("test-secret", "task-service")

	tok, err := s.SignSessionToken("user-1", string(domain.RoleUser), -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := s.VerifySessionToken(tok); !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}

func TestJWTSigner_GarbageRejected(t *testing.T) {
	s := NewJWTSigner("test-secret", "task-service")

	if _, err := s.VerifySessionToken("not.a.jwt"); !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}
