package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func IsValidPriority(p string) bool {
	return p == string(PriorityLow) || p == string(PriorityMedium) || p == string(PriorityHigh)
}

// DefaultCategory is assigned when a task is created without one.
const DefaultCategory = "General"

// Task belongs to exactly one owner. OwnerID is immutable after creation;
// only the owner or an admin may read, update or delete the task.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Category    string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
