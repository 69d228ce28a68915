package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/adapter/postgres"
	"github.com/heartmarshall/wordpath/internal/adapter/postgres/item"
	"github.com/heartmarshall/wordpath/internal/adapter/postgres/progress"
	"github.com/heartmarshall/wordpath/internal/adapter/sqlite"
	"github.com/heartmarshall/wordpath/internal/auth"
	"github.com/heartmarshall/wordpath/internal/config"
	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/internal/service/catalog"
	"github.com/heartmarshall/wordpath/internal/service/study"
	"github.com/heartmarshall/wordpath/internal/transport/middleware"
	"github.com/heartmarshall/wordpath/internal/transport/rest"
)

// ItemStore is the catalog side of a storage driver.
type ItemStore interface {
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

// ProgressStore is the per-learner side of a storage driver.
type ProgressStore interface {
	ListDue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.DueProgress, error)
	Upsert(ctx context.Context, p *domain.Progress) error
}

// Store bundles the repositories of one storage driver.
type Store struct {
	Driver   string
	Items    ItemStore
	Progress ProgressStore
	Ping     rest.PingFunc
	Close    func()
}

// OpenStore connects to the store selected by cfg.Storage.Driver. It does not
// apply migrations; that is the job of cmd/migrate.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened",
			slog.String("path", cfg.Storage.SQLitePath),
			slog.String("sqlite_version", sqlite.SQLiteVersion()),
		)
		return &Store{
			Driver:   config.DriverSQLite,
			Items:    sqlite.NewItemRepo(db),
			Progress: sqlite.NewProgressRepo(db),
			Ping:     db.PingContext,
			Close:    func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("postgres pool ready",
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)
		return &Store{
			Driver:   config.DriverPostgres,
			Items:    item.New(pool),
			Progress: progress.New(pool),
			Ping:     pool.Ping,
			Close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewHandler wires services, middleware and routes over st. The returned stop
// function releases background resources and must be called once the
// handler is no longer serving.
func NewHandler(cfg *config.Config, logger *slog.Logger, st *Store) (http.Handler, func(), error) {
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	studyService, err := study.NewService(logger, st.Items, st.Progress, cfg.Session.Domain())
	if err != nil {
		return nil, nil, err
	}
	catalogService := catalog.NewService(logger, st.Items)

	routes := rest.Routes{
		Health:   rest.NewHealthHandler(st.Ping, st.Driver, BuildVersion()),
		Sessions: rest.NewSessionHandler(studyService, logger),
		Items:    rest.NewItemHandler(catalogService, logger),
		Global: []middleware.Middleware{
			middleware.RequestID(),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
			middleware.Auth(jwtMgr),
			middleware.Logger(logger),
		},
	}

	stop := func() {}
	if cfg.Server.StartsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		routes.StartLimit = limiter.Limit(cfg.Server.StartsPerMinute)
		stop = limiter.Stop
	}

	return rest.NewRouter(routes), stop, nil
}

// Run is the application entry point. It loads configuration, opens the
// store, and serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	st, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	handler, stop, err := NewHandler(cfg, logger, st)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
