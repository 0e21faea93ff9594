package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskhive/task-service/internal/bootstrap"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/logger"
)

const shutdownTimeout = 15 * time.Second

type serverBuilder func() (*http.Server, func(), error)

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(buildFromEnv, sigCh, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func buildFromEnv() (*http.Server, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.BuildServer(cfg)
}

// run owns the serve/shutdown lifecycle. It is split from main so the
// lifecycle can be exercised in tests with a fake builder and signal channel.
func run(build serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) error {
	srv, cleanup, err := build()
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	lg.Info().Msg("server stopped")
	return nil
}
