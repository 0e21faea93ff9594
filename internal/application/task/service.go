package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/task-service/internal/domain"
)

// Service is the thin CRUD layer over tasks. All authorization here is the
// ownership gate: owner or admin for single-task operations, strict owner
// scope for listings (admins get no list-wide override).
type Service struct {
	tasks Repo
}

func NewService(tasks Repo) *Service {
	return &Service{tasks: tasks}
}

type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Category    string
}

// UpdateInput carries partial updates; nil fields keep the stored value.
// OwnerID is not updatable.
type UpdateInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Category    *string
	IsCompleted *bool
}

func (s *Service) Create(ctx context.Context, ident Identity, in CreateInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, domain.ErrMissingField("title")
	}

	priority := in.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}
	if !domain.IsValidPriority(priority) {
		return domain.Task{}, domain.ErrInvalidField("priority", "must be low, medium or high")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	t := domain.Task{
		ID:          uuid.NewString(),
		OwnerID:     ident.ID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Priority:    priority,
		Category:    category,
		IsCompleted: false,
	}

	return s.tasks.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, ident Identity, id string) (domain.Task, error) {
	return s.loadOwned(ctx, ident, id)
}

func (s *Service) Update(ctx context.Context, ident Identity, id string, in UpdateInput) (domain.Task, error) {
	t, err := s.loadOwned(ctx, ident, id)
	if err != nil {
		return domain.Task{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Task{}, domain.ErrMissingField("title")
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Priority != nil {
		if !domain.IsValidPriority(*in.Priority) {
			return domain.Task{}, domain.ErrInvalidField("priority", "must be low, medium or high")
		}
		t.Priority = *in.Priority
	}
	if in.Category != nil {
		t.Category = strings.TrimSpace(*in.Category)
		if t.Category == "" {
			t.Category = domain.DefaultCategory
		}
	}
	if in.IsCompleted != nil {
		t.IsCompleted = *in.IsCompleted
	}

	return s.tasks.Update(ctx, t)
}

// Delete is permanent; there is no soft-delete.
func (s *Service) Delete(ctx context.Context, ident Identity, id string) error {
	if _, err := s.loadOwned(ctx, ident, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// List returns the caller's own tasks only, whatever their role.
func (s *Service) List(ctx context.Context, ident Identity, f Filter) (ListResult, error) {
	tasks, total, err := s.tasks.List(ctx, ident.ID, f)
	if err != nil {
		return ListResult{}, err
	}
	return newListResult(tasks, f, total), nil
}

// loadOwned is the shared ownership gate: absent task is not-found, a task
// owned by someone else is forbidden unless the caller is admin.
func (s *Service) loadOwned(ctx context.Context, ident Identity, id string) (domain.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Task{}, domain.ErrMissingField("id")
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if t.OwnerID != ident.ID && !ident.IsAdmin() {
		return domain.Task{}, domain.ErrNotResourceOwner()
	}
	return t, nil
}
