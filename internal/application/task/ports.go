package task

import (
	"context"

	"github.com/taskhive/task-service/internal/domain"
)

/*
Repo
----
Persistence port for tasks. List applies the validated Filter on top of the
mandatory owner scope and returns one page plus the total match count.
*/
type Repo interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id string) (domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, f Filter) ([]domain.Task, int, error)
}

// Identity is the authenticated caller, as attached by the access-control
// middleware.
type Identity struct {
	ID   string
	Role string
}

func (i Identity) IsAdmin() bool { return i.Role == string(domain.RoleAdmin) }
