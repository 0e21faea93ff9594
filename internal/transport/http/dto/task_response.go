package dto

import (
	"time"

	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/domain"
)

type TaskPayload struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTaskPayload(t *domain.Task) TaskPayload {
	return TaskPayload{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Category:    t.Category,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type TaskResponse struct {
	Success bool        `json:"success"`
	Task    TaskPayload `json:"task"`
}

// TaskListResponse carries the page of tasks plus the pagination counters.
type TaskListResponse struct {
	Success     bool          `json:"success"`
	Count       int           `json:"count"`
	TotalTasks  int           `json:"totalTasks"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Tasks       []TaskPayload `json:"tasks"`
}

func NewTaskListResponse(res task.ListResult) TaskListResponse {
	payloads := make([]TaskPayload, 0, len(res.Tasks))
	for i := range res.Tasks {
		payloads = append(payloads, NewTaskPayload(&res.Tasks[i]))
	}
	return TaskListResponse{
		Success:     true,
		Count:       res.Count,
		TotalTasks:  res.TotalTasks,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		Tasks:       payloads,
	}
}
