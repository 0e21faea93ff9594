package memory

import (
	"context"
	"sync"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// UserRepo is the in-memory users store used by tests and as the dev
// fallback. It enforces the same email-uniqueness invariant the SQL store
// owns through its unique index.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	// ID should already be set by the service; be defensive.
	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) GetByVerificationDigest(ctx context.Context, digest string, now time.Time) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.VerificationTokenHash != nil && *u.VerificationTokenHash == digest &&
			u.VerificationExpiresAt != nil && u.VerificationExpiresAt.After(now) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) MarkVerified(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsVerified = true
	u.VerificationTokenHash = nil
	u.VerificationExpiresAt = nil
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) SetVerificationToken(ctx context.Context, userID, digest string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationTokenHash = &digest
	u.VerificationExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) ClearVerificationToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationTokenHash = nil
	u.VerificationExpiresAt = nil
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) GetByResetDigest(ctx context.Context, digest string, now time.Time) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == digest &&
			u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetTokenHash = &digest
	u.ResetExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) ClearResetToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetTokenHash = nil
	u.ResetExpiresAt = nil
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}
