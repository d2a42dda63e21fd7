// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/clients/feed"
	adapthttp "github.com/jsamuelsen11/go-interactor/internal/adapters/http"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/memdb"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/sqlite"

	"github.com/jsamuelsen11/go-interactor/internal/app"
	"github.com/jsamuelsen11/go-interactor/internal/app/executor"
	"github.com/jsamuelsen11/go-interactor/internal/app/repository"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/platform/config"
	"github.com/jsamuelsen11/go-interactor/internal/platform/health"
	"github.com/jsamuelsen11/go-interactor/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	ctx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()

	otel, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(ctx, injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	for _, store := range do.MustInvoke[*stores](injector).all() {
		registry.Register(store)
	}
	registry.Register(do.MustInvoke[*executor.Pool](injector))
	registry.Register(do.MustInvoke[*feed.Client](injector))

	do.MustInvoke[*app.ArticleService](injector).Start(ctx)

	if err := server.Listen(); err != nil {
		return err
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP, then tasks, then storage.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	if err := do.MustInvoke[*executor.Pool](injector).Shutdown(shutdownCtx); err != nil {
		logger.Error("executor shutdown error", slog.Any("error", err))
	}
	stopConsumers()

	if err := do.MustInvoke[*stores](injector).Close(); err != nil {
		logger.Error("store close error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetry.Providers, error) {
	if !cfg.Enabled {
		return &telemetry.Providers{}, nil
	}
	return telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.Exporter,
		Endpoint:    cfg.Endpoint,
	})
}

// backingStore is a ports.BackingStore that can report health and be closed.
type backingStore interface {
	ports.BackingStore
	ports.HealthChecker
	Close() error
}

// stores holds the primary store and the optional in-memory fast tier.
type stores struct {
	primary backingStore
	fast    backingStore
}

func (s *stores) all() []backingStore {
	if s.fast == nil {
		return []backingStore{s.primary}
	}
	return []backingStore{s.primary, s.fast}
}

// Close closes the fast tier first so no mirror writes outlive the primary.
func (s *stores) Close() error {
	var errs []error
	if s.fast != nil {
		errs = append(errs, s.fast.Close())
	}
	errs = append(errs, s.primary.Close())
	return errors.Join(errs...)
}

func openStores(ctx context.Context, cfg config.StoreConfig) (*stores, error) {
	s := &stores{}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		s.primary = sqlite.NewStore(db)
	case config.DriverMemDB:
		primary, err := memdb.New("primary")
		if err != nil {
			return nil, fmt.Errorf("creating memdb store: %w", err)
		}
		s.primary = primary
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if cfg.FastTier {
		fast, err := memdb.New("fast")
		if err != nil {
			_ = s.primary.Close()
			return nil, fmt.Errorf("creating fast tier: %w", err)
		}
		s.fast = fast
	}
	return s, nil
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*stores, error) {
		return openStores(ctx, cfg.Store)
	})

	do.Provide(injector, func(i do.Injector) (app.ArticleRepository, error) {
		s := do.MustInvoke[*stores](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		opts := []repository.Option{
			repository.WithLogger(logger),
			repository.WithMetrics(metrics),
		}
		if s.fast != nil {
			opts = append(opts, repository.WithFastTier(s.fast))
		}
		repo, err := repository.New[string, article.Article](article.Kind, s.primary, article.Adapter{}, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating article repository: %w", err)
		}
		return repo, nil
	})

	do.Provide(injector, func(i do.Injector) (*executor.Pool, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return executor.New(executor.Config{
			Workers:       cfg.Executor.Workers,
			QueueSize:     cfg.Executor.QueueSize,
			RatePerSecond: cfg.Executor.RatePerSecond,
			Burst:         cfg.Executor.Burst,
		}, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Feed, feed.ServiceName, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*feed.Client, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return feed.NewClient(client, cfg.Feed.Path, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.FeedClient, error) {
		return do.MustInvoke[*feed.Client](i), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ArticleService, error) {
		repo := do.MustInvoke[app.ArticleRepository](i)
		pool := do.MustInvoke[*executor.Pool](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		delegate, err := feed.NewDelegate(do.MustInvoke[ports.FeedClient](i))
		if err != nil {
			return nil, err
		}

		return app.NewArticleService(repo, delegate, pool, logger,
			app.WithServiceMetrics(metrics),
			app.WithIntrospection(telemetry.NewIntrospector(cfg.Telemetry.ServiceName, nil)),
			app.WithSyncNotifyTimeout(cfg.Executor.NotifyTimeout),
			app.WithSyncErrorComposer(feed.ComposeError),
			app.WithTaskLogging(cfg.Log.Level == "debug"),
		)
	})

	do.Provide(injector, func(i do.Injector) (ports.ArticleService, error) {
		return do.MustInvoke[*app.ArticleService](i), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(cfg.Server.HealthCheckTimeout), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ArticleHandler, error) {
		svc := do.MustInvoke[ports.ArticleService](i)
		return handlers.NewArticleHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SyncHandler, error) {
		svc := do.MustInvoke[ports.ArticleService](i)
		return handlers.NewSyncHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		routes := adapthttp.Handlers{
			Articles: do.MustInvoke[*handlers.ArticleHandler](i),
			Sync:     do.MustInvoke[*handlers.SyncHandler](i),
			Health:   do.MustInvoke[*handlers.HealthHandler](i),
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		// Recovery and request identity wrap every other layer.
		edge := middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
		)

		return adapthttp.NewRouter(routes,
			edge,
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.CORS(cfg.CORS),
			middleware.Timeout(cfg.Server.RequestTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
