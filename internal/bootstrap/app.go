package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/infra/config"
	"github.com/yanqian/wellbeing/internal/infra/queue"
)

// App encapsulates the HTTP server and background job lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	svc    wellbeing.Service
	jobs   queue.HandlerQueue
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, svc wellbeing.Service, jobs queue.HandlerQueue) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With("component", "bootstrap"),
		server: server,
		svc:    svc,
		jobs:   jobs,
	}
}

// Run starts the job worker and the HTTP server, then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.jobs.SetHandler(a.svc.HandleJob)
	defer a.jobs.Stop()
	a.logger.Info("job worker started", "driver", a.cfg.Queue.Driver)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
