package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// fakeRepo is a minimal in-test Repo. List applies Filter.Matches plus
// pagination, newest first, which is enough for the service-level tests.
type fakeRepo struct {
	byID map[string]domain.Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]domain.Task)}
}

func (r *fakeRepo) Create(_ context.Context, t domain.Task) (domain.Task, error) {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.byID[t.ID] = t
	return t, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound()
	}
	return t, nil
}

func (r *fakeRepo) Update(_ context.Context, t domain.Task) (domain.Task, error) {
	stored, ok := r.byID[t.ID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound()
	}
	t.OwnerID = stored.OwnerID
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = time.Now()
	r.byID[t.ID] = t
	return t, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, ownerID string, f Filter) ([]domain.Task, int, error) {
	var matched []domain.Task
	for _, t := range r.byID {
		if t.OwnerID == ownerID && f.Matches(t) {
			matched = append(matched, t)
		}
	}
	total := len(matched)

	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected domain error %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q", code, de.Code)
	}
}

var (
	owner = Identity{ID: "owner-1", Role: string(domain.RoleUser)}
	other = Identity{ID: "other-1", Role: string(domain.RoleUser)}
	admin = Identity{ID: "admin-1", Role: string(domain.RoleAdmin)}
)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo), repo
}

func mustCreate(t *testing.T, svc *Service, ident Identity, title string) domain.Task {
	t.Helper()
	created, err := svc.Create(context.Background(), ident, CreateInput{Title: title})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), owner, CreateInput{Title: "  Buy milk  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Title != "Buy milk" {
		t.Fatalf("title = %q", created.Title)
	}
	if created.OwnerID != owner.ID {
		t.Fatalf("owner = %q", created.OwnerID)
	}
	if created.Priority != string(domain.PriorityMedium) {
		t.Fatalf("priority = %q, want default medium", created.Priority)
	}
	if created.Category != domain.DefaultCategory {
		t.Fatalf("category = %q, want default", created.Category)
	}
	if created.IsCompleted {
		t.Fatal("new task must start incomplete")
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, CreateInput{Title: "   "})
	requireCode(t, err, "missing_field")

	_, err = svc.Create(ctx, owner, CreateInput{Title: "x", Priority: "urgent"})
	requireCode(t, err, "invalid_field")
}

func TestOwnershipGate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := mustCreate(t, svc, owner, "private task")

	// Owner can read.
	if _, err := svc.Get(ctx, owner, created.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	// Another user is forbidden, on every single-task operation.
	_, err := svc.Get(ctx, other, created.ID)
	requireCode(t, err, "not_owner")

	newTitle := "hijacked"
	_, err = svc.Update(ctx, other, created.ID, UpdateInput{Title: &newTitle})
	requireCode(t, err, "not_owner")

	requireCode(t, svc.Delete(ctx, other, created.ID), "not_owner")

	// Admin passes the gate.
	if _, err := svc.Get(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if err := svc.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), owner, "missing-id")
	requireCode(t, err, "task_not_found")

	_, err = svc.Get(context.Background(), owner, "  ")
	requireCode(t, err, "missing_field")
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := mustCreate(t, svc, owner, "original title")

	done := true
	updated, err := svc.Update(ctx, owner, created.ID, UpdateInput{IsCompleted: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// Only the toggled field changed.
	if !updated.IsCompleted {
		t.Fatal("is_completed should be true")
	}
	if updated.Title != "original title" {
		t.Fatalf("title changed unexpectedly: %q", updated.Title)
	}
	if updated.OwnerID != owner.ID {
		t.Fatal("owner must be immutable")
	}
}

func TestUpdate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := mustCreate(t, svc, owner, "task")

	empty := "   "
	_, err := svc.Update(ctx, owner, created.ID, UpdateInput{Title: &empty})
	requireCode(t, err, "missing_field")

	bad := "urgent"
	_, err = svc.Update(ctx, owner, created.ID, UpdateInput{Priority: &bad})
	requireCode(t, err, "invalid_field")
}

func TestDelete_Permanent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := mustCreate(t, svc, owner, "doomed")

	if err := svc.Delete(ctx, owner, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.Get(ctx, owner, created.ID)
	requireCode(t, err, "task_not_found")
}

func TestList_OwnerScopedEvenForAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, owner, "owner task 1")
	mustCreate(t, svc, owner, "owner task 2")
	mustCreate(t, svc, other, "other task")

	f, _ := ParseFilter("", "", "", "", "", 0, 0)

	res, err := svc.List(ctx, owner, f)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.TotalTasks != 2 {
		t.Fatalf("owner totalTasks = %d", res.TotalTasks)
	}

	// Admins see only their own tasks in listings; the admin override is
	// restricted to single-task access by id.
	adminRes, err := svc.List(ctx, admin, f)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if adminRes.TotalTasks != 0 {
		t.Fatalf("admin totalTasks = %d, want 0", adminRes.TotalTasks)
	}
}

func TestList_Pagination(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		mustCreate(t, svc, owner, "task")
	}

	page1, _ := ParseFilter("", "", "", "", "", 1, 0)
	res1, err := svc.List(ctx, owner, page1)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if res1.Count != 10 || res1.TotalTasks != 15 || res1.TotalPages != 2 || res1.CurrentPage != 1 {
		t.Fatalf("page 1 = count %d total %d pages %d current %d",
			res1.Count, res1.TotalTasks, res1.TotalPages, res1.CurrentPage)
	}

	page2, _ := ParseFilter("", "", "", "", "", 2, 0)
	res2, err := svc.List(ctx, owner, page2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if res2.Count != 5 || res2.CurrentPage != 2 {
		t.Fatalf("page 2 = count %d current %d", res2.Count, res2.CurrentPage)
	}

	// A page past the end is empty, not an error.
	page9, _ := ParseFilter("", "", "", "", "", 9, 0)
	res9, err := svc.List(ctx, owner, page9)
	if err != nil {
		t.Fatalf("list page 9: %v", err)
	}
	if res9.Count != 0 || res9.TotalTasks != 15 {
		t.Fatalf("page 9 = count %d total %d", res9.Count, res9.TotalTasks)
	}
}
