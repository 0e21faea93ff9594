package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/domain"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, owner_id, title, description, due_date, priority, category, is_completed, created_at, updated_at`

// sortColumns whitelists the ORDER BY targets; the filter layer already
// validated the field, this map is the last line of defense before SQL.
var sortColumns = map[string]string{
	task.SortCreatedAt: "created_at",
	task.SortUpdatedAt: "updated_at",
	task.SortDueDate:   "due_date",
	task.SortPriority:  "priority",
	task.SortTitle:     "title",
}

type taskRow struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     sql.NullTime
	Priority    string
	Category    string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func scanTaskRow(row rowScanner) (taskRow, error) {
	var tr taskRow
	err := row.Scan(
		&tr.ID,
		&tr.OwnerID,
		&tr.Title,
		&tr.Description,
		&tr.DueDate,
		&tr.Priority,
		&tr.Category,
		&tr.IsCompleted,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	return tr, err
}

func toDomainTask(tr taskRow) domain.Task {
	t := domain.Task{
		ID:          tr.ID,
		OwnerID:     tr.OwnerID,
		Title:       tr.Title,
		Description: tr.Description,
		Priority:    tr.Priority,
		Category:    tr.Category,
		IsCompleted: tr.IsCompleted,
		CreatedAt:   tr.CreatedAt,
		UpdatedAt:   tr.UpdatedAt,
	}
	if tr.DueDate.Valid {
		v := tr.DueDate.Time
		t.DueDate = &v
	}
	return t
}

func (r *TaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	if t.ID == "" {
		return domain.Task{}, domain.ErrMissingField("id")
	}
	if t.OwnerID == "" {
		return domain.Task{}, domain.ErrMissingField("owner_id")
	}

	const q = `
INSERT INTO tasks (id, owner_id, title, description, due_date, priority, category, is_completed)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + taskColumns + `;
`
	tr, err := scanTaskRow(r.db.QueryRowContext(ctx, q,
		t.ID, t.OwnerID, t.Title, t.Description, nullTime(t.DueDate),
		t.Priority, t.Category, t.IsCompleted,
	))
	if err != nil {
		return domain.Task{}, domain.ErrDBUnavailable(err)
	}
	return toDomainTask(tr), nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (domain.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Task{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
LIMIT 1;
`
	tr, err := scanTaskRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound()
		}
		return domain.Task{}, domain.ErrDBUnavailable(err)
	}
	return toDomainTask(tr), nil
}

// Update writes every mutable column; owner_id and created_at stay put.
func (r *TaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	if t.ID == "" {
		return domain.Task{}, domain.ErrMissingField("id")
	}

	const q = `
UPDATE tasks
SET title = $2,
    description = $3,
    due_date = $4,
    priority = $5,
    category = $6,
    is_completed = $7,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + taskColumns + `;
`
	tr, err := scanTaskRow(r.db.QueryRowContext(ctx, q,
		t.ID, t.Title, t.Description, nullTime(t.DueDate),
		t.Priority, t.Category, t.IsCompleted,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound()
		}
		return domain.Task{}, domain.ErrDBUnavailable(err)
	}
	return toDomainTask(tr), nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM tasks WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTaskNotFound()
	}
	return nil
}

// List builds the WHERE clause from the validated filter. Every fragment is
// parameterized; the only interpolated piece is the whitelisted sort column.
func (r *TaskRepo) List(ctx context.Context, ownerID string, f task.Filter) ([]domain.Task, int, error) {
	if ownerID == "" {
		return nil, 0, domain.ErrMissingField("owner_id")
	}

	where := []string{"owner_id = $1"}
	args := []any{ownerID}

	switch f.Status {
	case task.StatusCompleted:
		where = append(where, "is_completed = TRUE")
	case task.StatusPending:
		where = append(where, "is_completed = FALSE")
	}

	if f.Priority != "" {
		args = append(args, f.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		where = append(where, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	whereSQL := strings.Join(where, " AND ")

	countQ := "SELECT COUNT(*) FROM tasks WHERE " + whereSQL + ";"
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}

	col, ok := sortColumns[f.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	args = append(args, f.Limit, f.Offset())
	listQ := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d;",
		taskColumns, whereSQL, col, dir, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, listQ, args...)
	if err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		tr, err := scanTaskRow(rows)
		if err != nil {
			return nil, 0, domain.ErrDBUnavailable(err)
		}
		tasks = append(tasks, toDomainTask(tr))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}

	return tasks, total, nil
}
