package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/http"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    docstore.Store
	Catalog  *catalog.Catalog
	Repos    Repos
	Services Services
	Router   *gin.Engine
	Metrics  *observability.Metrics

	server       *http.Server
	otelShutdown func(context.Context) error
}

// New wires the whole service from cfg. Close releases what New opened.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(log, cfg.MetricsEnabled)

	cat, err := catalog.Default(log)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	log.Info("Opening document store...", "driver", cfg.Store.Driver)
	store, err := OpenStore(ctx, cfg.Store, log, true)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	gen, err := NewGenerator(ctx, cfg.Generation, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	reposet := wireRepos(store, log, cfg)
	serviceset, err := wireServices(log, cfg, reposet, cat, gen)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset, cat)
	router := wireRouter(log, cfg, serviceset, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Catalog:      cat,
		Repos:        reposet,
		Services:     serviceset,
		Router:       router,
		Metrics:      metrics,
		server:       http.NewServer(router, ":"+cfg.Port),
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves on cfg.Port until ctx is done or SIGINT/SIGTERM arrives, then
// drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("HTTP server listening", "addr", a.server.Addr())
		errCh <- a.server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("Shutting down HTTP server...")
	timeout := a.Cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.otelShutdown(ctx))
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
