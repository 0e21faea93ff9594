package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/domain"
	"github.com/taskhive/task-service/internal/transport/http/dto"
	"github.com/taskhive/task-service/internal/transport/http/middleware"
	"github.com/taskhive/task-service/internal/transport/http/response"
)

type TaskHandler struct {
	svc *task.Service
}

func NewTaskHandler(svc *task.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.CreateTaskRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), ident, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.TaskResponse{Success: true, Task: dto.NewTaskPayload(&t)})
}

// List handles GET /api/tasks with filter, sort and pagination query params.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	q := r.URL.Query()
	page, err := queryInt(q.Get("page"), "page")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	limit, err := queryInt(q.Get("limit"), "limit")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	f, err := task.ParseFilter(
		q.Get("status"),
		q.Get("priority"),
		q.Get("category"),
		q.Get("search"),
		q.Get("sortBy"),
		page, limit,
	)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), ident, f)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTaskListResponse(res))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	t, err := h.svc.Get(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.TaskResponse{Success: true, Task: dto.NewTaskPayload(&t)})
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.UpdateTaskRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	t, err := h.svc.Update(r.Context(), ident, chi.URLParam(r, "id"), task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.TaskResponse{Success: true, Task: dto.NewTaskPayload(&t)})
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	if err := h.svc.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{Success: true, Message: "task deleted"})
}

// queryInt parses an optional positive integer query parameter. Zero means
// absent; the filter applies its own defaults.
func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.ErrInvalidField(field, "must be a positive integer")
	}
	return n, nil
}
