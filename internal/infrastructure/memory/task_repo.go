package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/domain"
)

// TaskRepo is the in-memory tasks store. Listing applies the same filter,
// sort and pagination semantics as the SQL store.
type TaskRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Task
}

func NewTaskRepo() *TaskRepo {
	return &TaskRepo{byID: make(map[string]domain.Task)}
}

func (r *TaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return domain.Task{}, domain.ErrInternal(nil)
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.byID[t.ID] = t
	return t, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound()
	}
	return t, nil
}

func (r *TaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[t.ID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound()
	}

	// OwnerID and CreatedAt are immutable.
	t.OwnerID = stored.OwnerID
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = time.Now()
	r.byID[t.ID] = t
	return t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *TaskRepo) List(ctx context.Context, ownerID string, f task.Filter) ([]domain.Task, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Task
	for _, t := range r.byID {
		if t.OwnerID != ownerID {
			continue
		}
		if f.Matches(t) {
			matched = append(matched, t)
		}
	}

	sortTasks(matched, f)

	total := len(matched)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}

	page := make([]domain.Task, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func sortTasks(tasks []domain.Task, f task.Filter) {
	less := func(a, b domain.Task) bool {
		switch f.SortField {
		case task.SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case task.SortPriority:
			return a.Priority < b.Priority
		case task.SortDueDate:
			at, bt := timeOrZero(a.DueDate), timeOrZero(b.DueDate)
			return at.Before(bt)
		case task.SortUpdatedAt:
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if f.SortDesc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
