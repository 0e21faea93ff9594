package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// ---------- assertion helper ----------

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected domain error %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}

// ---------- fakes ----------

type fakeUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]string

	createErr error
	clearedVerification []string
	clearedReset        []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	if r.createErr != nil {
		return domain.User{}, r.createErr
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *fakeUserRepo) GetByVerificationDigest(_ context.Context, digest string, now time.Time) (domain.User, error) {
	for _, u := range r.byID {
		if u.VerificationTokenHash != nil && *u.VerificationTokenHash == digest &&
			u.VerificationExpiresAt != nil && u.VerificationExpiresAt.After(now) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsVerified = true
	u.VerificationTokenHash = nil
	u.VerificationExpiresAt = nil
	r.byID[userID] = u
	return nil
}

func (r *fakeUserRepo) SetVerificationToken(_ context.Context, userID, digest string, expiresAt time.Time) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationTokenHash = &digest
	u.VerificationExpiresAt = &expiresAt
	r.byID[userID] = u
	return nil
}

func (r *fakeUserRepo) ClearVerificationToken(_ context.Context, userID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationTokenHash = nil
	u.VerificationExpiresAt = nil
	r.byID[userID] = u
	r.clearedVerification = append(r.clearedVerification, userID)
	return nil
}

func (r *fakeUserRepo) GetByResetDigest(_ context.Context, digest string, now time.Time) (domain.User, error) {
	for _, u := range r.byID {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == digest &&
			u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID, digest string, expiresAt time.Time) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetTokenHash = &digest
	u.ResetExpiresAt = &expiresAt
	r.byID[userID] = u
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, userID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetTokenHash = nil
	u.ResetExpiresAt = nil
	r.byID[userID] = u
	r.clearedReset = append(r.clearedReset, userID)
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, userID string, newHash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	r.byID[userID] = u
	return nil
}

// expireVerification backdates the pending deadline so the token lookup
// misses.
func (r *fakeUserRepo) expireVerification(userID string) {
	u := r.byID[userID]
	past := time.Now().Add(-time.Minute)
	u.VerificationExpiresAt = &past
	r.byID[userID] = u
}

type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr error
}

func (s *fakeSigner) SignSessionToken(userID, role string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return fmt.Sprintf("token|%s|%s", userID, role), nil
}

func (s *fakeSigner) VerifySessionToken(string) (TokenClaims, error) {
	return TokenClaims{}, errors.New("not implemented in fake")
}

// fakeTokens produces deterministic tokens while keeping the real
// plaintext-to-digest relation.
type fakeTokens struct {
	n int
}

func (f *fakeTokens) Generate() (string, string, error) {
	f.n++
	plaintext := fmt.Sprintf("token-%d", f.n)
	return plaintext, f.Digest(plaintext), nil
}

func (f *fakeTokens) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

type sentMail struct {
	kind string // "verify" or "reset"
	to   string
	url  string
}

type fakeMailer struct {
	failWith error
	sent     []sentMail
}

func (m *fakeMailer) SendVerifyEmail(_ context.Context, to, url string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{kind: "verify", to: to, url: url})
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, url string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, url: url})
	return nil
}

// ---------- harness ----------

type testEnv struct {
	svc    *Service
	users  *fakeUserRepo
	tokens *fakeTokens
	mailer *fakeMailer
	signer *fakeSigner
	hasher *fakeHasher
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:  newFakeUserRepo(),
		tokens: &fakeTokens{},
		mailer: &fakeMailer{},
		signer: &fakeSigner{},
		hasher: &fakeHasher{},
	}
	env.svc = NewService(env.users, env.hasher, env.signer, env.tokens, env.mailer, Config{
		VerifyEmailBaseURL:   "http://localhost/verify",
		PasswordResetBaseURL: "http://localhost/reset",
	})
	return env
}

// register creates an account through the service and returns the plaintext
// verification token that was mailed out.
func (e *testEnv) register(t *testing.T, email, password, role string) (domain.User, string) {
	t.Helper()
	res, err := e.svc.Register(context.Background(), email, password, role)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(e.mailer.sent) == 0 {
		t.Fatal("no verification mail recorded")
	}
	last := e.mailer.sent[len(e.mailer.sent)-1]
	return res.User, lastPathSegment(last.url)
}

func lastPathSegment(url string) string {
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			return url[i+1:]
		}
	}
	return url
}
