package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskPlanner/internal/config"
	"taskPlanner/internal/handlers"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/middleware"
	"taskPlanner/internal/models/user"
	"taskPlanner/internal/repository/task/inmemory"
	"taskPlanner/internal/repository/task/postgres"
	"taskPlanner/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Store is what the app needs from a backend: the task store used by the
// service and the user store used for authentication.
type Store interface {
	service.TaskRepository
	middleware.UserLookup
	SaveUser(context.Context, *user.User) error
}

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository Store
	service    handlers.Service
	shutdowns  []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Flushing logs...")
		logger.Sync()
	})

	if err := a.initRepository(ctx); err != nil {
		return err
	}
	if err := a.seedUsers(ctx); err != nil {
		return err
	}

	a.service = service.NewTaskService(a.repository,
		service.NewStatusResolver(a.repository, a.config.Repository.StatusCacheTTL))

	a.initRouter()
	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           otelhttp.NewHandler(a.router, "task-planner"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.PoolConfig{
			MaxConns:        a.config.Database.MaxConnections,
			MinConns:        a.config.Database.MinConnections,
			MaxConnIdleTime: a.config.Database.IdleTimeout,
		})
		if err != nil {
			return fmt.Errorf("init postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Closing database pool...")
			storage.Close()
		})

		if a.config.Database.Migrate {
			if err := storage.Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		a.repository = storage
	default:
		a.repository = inmemory.NewTaskStorage()
	}

	logger.Info("App: Repository ready", zap.String("type", a.config.Repository.Type))
	return nil
}

// seedUsers provisions the configured users. In development a token is logged
// for each so the API can be called right away.
func (a *App) seedUsers(ctx context.Context) error {
	for _, uc := range a.config.Auth.Users {
		u := &user.User{
			Email:     uc.Email,
			FirstName: uc.FirstName,
			LastName:  uc.LastName,
			IsAdmin:   uc.IsAdmin,
		}
		if err := a.repository.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", uc.Email, err)
		}

		fields := []zap.Field{zap.Int64("user_id", u.ID), zap.String("email", u.Email), zap.Bool("is_admin", u.IsAdmin)}
		if a.config.Logging.Development {
			token, err := middleware.IssueToken([]byte(a.config.Auth.JWTSecret), u.ID, 24*time.Hour)
			if err != nil {
				return fmt.Errorf("issue token for %s: %w", uc.Email, err)
			}
			fields = append(fields, zap.String("token", token))
		}
		logger.Info("App: User provisioned", fields...)
	}
	return nil
}

func (a *App) initRouter() {
	taskHandler := handlers.NewTaskHandler(a.service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(a.config.Server.RequestTimeout))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))
	r.Use(middleware.CORS(a.config.Server.AllowedOrigins))

	r.Get("/health", taskHandler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(a.config.Auth.JWTSecret), a.repository))
		r.Route("/tasks", taskHandler.Routes)
	})

	a.router = r
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("App: Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("App: Shutdown signal received")
	case err := <-serverErr:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownGrace)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: Server shutdown failed", err)
		if runErr == nil {
			runErr = err
		}
	}

	a.Shutdown()
	return runErr
}

// Shutdown runs the registered hooks in reverse order.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
