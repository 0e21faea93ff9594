package auth

import (
	"context"

	"github.com/taskhive/task-service/internal/domain"
)

// GetUserByID re-resolves the identity behind a session token. The record
// can disappear between token issuance and use; that surfaces as not-found.
func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
