package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskhive/task-service/internal/application/auth"
	"github.com/taskhive/task-service/internal/application/task"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/infrastructure/db/postgres"
	"github.com/taskhive/task-service/internal/infrastructure/email"
	"github.com/taskhive/task-service/internal/infrastructure/memory"
	"github.com/taskhive/task-service/internal/infrastructure/security"
	"github.com/taskhive/task-service/internal/transport/http/handlers"
	"github.com/taskhive/task-service/internal/transport/http/middleware"
	"github.com/taskhive/task-service/internal/transport/http/router"
)

// BuildServer wires configuration into a ready-to-run HTTP server. The
// returned cleanup closes whatever infrastructure was opened; it is safe to
// call after the server has shut down.
func BuildServer(cfg *config.Config) (*http.Server, func(), error) {
	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		userRepo auth.UserRepo
		taskRepo task.Repo
	)

	if cfg.DBAddr != "" {
		db, err := config.NewDB(cfg.DBAddr)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open database: %w", err)
		}
		cleanups = append(cleanups, func() { _ = db.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = postgres.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			return nil, cleanup, fmt.Errorf("ensure schema: %w", err)
		}

		userRepo = postgres.NewUserRepo(db)
		taskRepo = postgres.NewTaskRepo(db)
		log.Info().Msg("using postgres storage")
	} else {
		// dev fallback; config.Load rejects an empty DB_ADDR outside dev
		userRepo = memory.NewUserRepo()
		taskRepo = memory.NewTaskRepo()
		log.Warn().Msg("DB_ADDR not set, using in-memory storage")
	}

	var mailer auth.MailSender
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Timeout:  cfg.SMTPTimeout,
			Insecure: cfg.SMTPInsecure,
		}, log.Logger)
	} else {
		mailer = email.NewFakeSender(log.Logger)
		log.Warn().Msg("SMTP_HOST not set, outbound mail is logged only")
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "task-service")
	tokens := security.NewActionTokenCodec()

	base := strings.TrimRight(cfg.AppBaseURL, "/")
	authSvc := auth.NewService(userRepo, hasher, signer, tokens, mailer, auth.Config{
		SessionTTL:           cfg.SessionTokenTTL,
		VerifyEmailBaseURL:   base + "/api/auth/verify-email",
		PasswordResetBaseURL: base + "/reset-password",
		VerifyTokenTTL:       cfg.VerifyTokenTTL,
		ResetTokenTTL:        cfg.ResetTokenTTL,
	})
	taskSvc := task.NewService(taskRepo)

	handler, err := router.New(router.Deps{
		Auth:          handlers.NewAuthHandler(authSvc),
		Tasks:         handlers.NewTaskHandler(taskSvc),
		Authenticator: middleware.NewAuthenticator(signer, userRepo),
		AllowedOrigin: cfg.AllowedOrigin,
	})
	if err != nil {
		return nil, cleanup, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return srv, cleanup, nil
}
