package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskhive/task-service/internal/domain"
	"github.com/taskhive/task-service/internal/transport/http/handlers"
	"github.com/taskhive/task-service/internal/transport/http/middleware"
	"github.com/taskhive/task-service/internal/transport/http/response"
)

// Deps carries everything the router mounts. All fields are required.
type Deps struct {
	Auth          *handlers.AuthHandler
	Tasks         *handlers.TaskHandler
	Authenticator *middleware.Authenticator
	AllowedOrigin string
}

func (d Deps) validate() error {
	if d.Auth == nil {
		return fmt.Errorf("router: auth handler is nil")
	}
	if d.Tasks == nil {
		return fmt.Errorf("router: task handler is nil")
	}
	if d.Authenticator == nil {
		return fmt.Errorf("router: authenticator is nil")
	}
	return nil
}

// New builds the HTTP routing tree.
func New(d Deps) (http.Handler, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(d.AllowedOrigin))

	r.Get("/healthz", handlers.Health)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", d.Auth.Register)
			ar.Get("/verify-email/{token}", d.Auth.VerifyEmail)
			ar.Post("/verify-email/resend", d.Auth.ResendVerification)
			ar.Post("/login", d.Auth.Login)
			ar.Post("/password-reset/request", d.Auth.PasswordResetRequest)
			ar.Post("/password-reset/confirm", d.Auth.PasswordResetConfirm)

			ar.Group(func(pr chi.Router) {
				pr.Use(d.Authenticator.RequireAuth)
				pr.Get("/me", d.Auth.Me)
			})
		})

		api.Route("/tasks", func(tr chi.Router) {
			tr.Use(d.Authenticator.RequireAuth)
			tr.Post("/", d.Tasks.Create)
			tr.Get("/", d.Tasks.List)
			tr.Get("/{id}", d.Tasks.Get)
			tr.Put("/{id}", d.Tasks.Update)
			tr.Delete("/{id}", d.Tasks.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.WriteError(w, req, domain.ErrRouteNotFound(req.URL.Path))
	})

	return r, nil
}
