package task

import (
	"math"
	"strings"

	"github.com/taskhive/task-service/internal/domain"
)

// Completion-status filter values accepted on listings.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Sortable columns are enumerated; caller-supplied sort strings never reach
// the query layer unvalidated.
const (
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
	SortDueDate   = "due_date"
	SortPriority  = "priority"
	SortTitle     = "title"
)

var sortFields = map[string]bool{
	SortCreatedAt: true,
	SortUpdatedAt: true,
	SortDueDate:   true,
	SortPriority:  true,
	SortTitle:     true,
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Filter is the explicit, validated filter/sort/pagination descriptor for
// task listings. Build it with ParseFilter; zero values mean "no filter".
type Filter struct {
	Status   string // "", "completed" or "pending"
	Priority string // "", "low", "medium" or "high"
	Category string // case-insensitive substring
	Search   string // case-insensitive substring on title OR description

	SortField string
	SortDesc  bool

	Page  int
	Limit int
}

// ParseFilter validates raw query inputs into a Filter. sortBy uses the
// "field:dir" form, defaulting to newest first.
func ParseFilter(status, priority, category, search, sortBy string, page, limit int) (Filter, error) {
	f := Filter{
		Category:  strings.TrimSpace(category),
		Search:    strings.TrimSpace(search),
		SortField: SortCreatedAt,
		SortDesc:  true,
		Page:      page,
		Limit:     limit,
	}

	switch status {
	case "", StatusCompleted, StatusPending:
		f.Status = status
	default:
		return Filter{}, domain.ErrInvalidField("status", "must be completed or pending")
	}

	if priority != "" {
		if !domain.IsValidPriority(priority) {
			return Filter{}, domain.ErrInvalidField("priority", "must be low, medium or high")
		}
		f.Priority = priority
	}

	if sortBy != "" {
		field, dir, _ := strings.Cut(sortBy, ":")
		if !sortFields[field] {
			return Filter{}, domain.ErrInvalidField("sortBy", "unknown sort field")
		}
		f.SortField = field
		f.SortDesc = dir == "desc"
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	return f, nil
}

func (f Filter) Offset() int { return (f.Page - 1) * f.Limit }

// ListResult is one page of tasks plus the pagination metadata the API
// reports.
type ListResult struct {
	Tasks       []domain.Task
	CurrentPage int
	TotalPages  int
	TotalTasks  int
	Count       int
}

func newListResult(tasks []domain.Task, f Filter, total int) ListResult {
	totalPages := int(math.Ceil(float64(total) / float64(f.Limit)))
	return ListResult{
		Tasks:       tasks,
		CurrentPage: f.Page,
		TotalPages:  totalPages,
		TotalTasks:  total,
		Count:       len(tasks),
	}
}

// Matches reports whether a task satisfies the filter's predicate part
// (status, priority, category, search). Shared by the in-memory repo.
func (f Filter) Matches(t domain.Task) bool {
	if f.Status == StatusCompleted && !t.IsCompleted {
		return false
	}
	if f.Status == StatusPending && t.IsCompleted {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && !containsFold(t.Category, f.Category) {
		return false
	}
	if f.Search != "" && !containsFold(t.Title, f.Search) && !containsFold(t.Description, f.Search) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
