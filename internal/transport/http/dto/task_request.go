package dto

import "time"

// CreateTaskRequest is the create endpoint payload. Only the title is
// required; priority and category fall back to service defaults.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string     `json:"category"`
}

func (r CreateTaskRequest) Validate() error { return checkStruct(r) }

// UpdateTaskRequest uses pointers so absent fields are left untouched while
// explicit zero values still apply.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority" validate:"omitempty"`
	Category    *string    `json:"category"`
	IsCompleted *bool      `json:"is_completed"`
}

func (r UpdateTaskRequest) Validate() error { return checkStruct(r) }
