// Package server boots the HTTP application: configuration, database,
// cache, storage, middleware stack, routes and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pedalpoint/bikeshop/app/routes"
	"github.com/pedalpoint/bikeshop/config"
	"github.com/pedalpoint/bikeshop/pkg/cache"
	"github.com/pedalpoint/bikeshop/pkg/database"
	"github.com/pedalpoint/bikeshop/pkg/logger"
	"github.com/pedalpoint/bikeshop/pkg/metrics"
	"github.com/pedalpoint/bikeshop/pkg/middleware"
	"github.com/pedalpoint/bikeshop/pkg/reqid"
	"github.com/pedalpoint/bikeshop/pkg/router"
	"github.com/pedalpoint/bikeshop/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// NewRouter assembles the middleware stack and every route. Exposed so
// the CLI can print the route table without starting a listener.
func NewRouter() *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())
	routes.RegisterAPI(r, database.DB)
	return r
}

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := cache.Connect(); err != nil {
		// The cache is an accelerator, not a dependency.
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := database.Close(); err != nil {
		logger.Warn("closing database", "error", err)
	}
	logger.Info("server stopped")
	return nil
}
