package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"ogacli/internal/config"
	"ogacli/internal/dataset"
	"ogacli/internal/infrastructure"
	customMiddleware "ogacli/internal/middleware"
	"ogacli/internal/pipeline"
	"ogacli/internal/services"
	handlers "ogacli/internal/transport/http"
	"ogacli/pkg/contracts"
)

// Application is the analysis server container.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	AnalysisService *services.AnalysisService
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		EnableMetrics: true,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize otel: %w", err)
	}

	p := pipeline.New(cfg.Pipeline, dataset.NewLoader(logger),
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(providers.Metrics),
		pipeline.WithTracer(providers.Tracer),
	)

	app := &Application{
		Config:          cfg,
		AnalysisService: services.NewAnalysisService(cfg, p, logger),
		Logger:          logger,
		OTelProviders:   providers,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Mount("/api/analysis", handlers.NewAnalysisHandler(a.AnalysisService, a.Logger).Routes())
	r.Mount("/api/health", handlers.NewHealthHandler(a.AnalysisService, a.Logger).Routes())

	// Prometheus scrape endpoint, outside the middleware stack.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// Run loads the canonical table and serves until interrupted.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "starting analysis server",
		slog.String("version", contracts.GetVersionString()),
		slog.String("addr", a.Server.Addr))

	if err := a.AnalysisService.Load(ctx); err != nil {
		return fmt.Errorf("load canonical table: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown drains the server and flushes telemetry.
func (a *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.InfoContext(ctx, "shutting down analysis server")

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.WarnContext(ctx, "otel shutdown failed", slog.String("error", err.Error()))
		}
	}
	infrastructure.CloseLogFile()
	return nil
}
