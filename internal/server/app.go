// Package server wires the PlanIT services together and runs the HTTP API
// and the gRPC health endpoint until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/planit/internal/dbx"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/auth"
	"github.com/dmitrijs2005/planit/internal/server/config"
	"github.com/dmitrijs2005/planit/internal/server/httpapi"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/planit/internal/server/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	gs "github.com/dmitrijs2005/planit/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	sqlDB  *sql.DB
	router *echo.Echo
	grpc   *gs.GRPCServer
}

// NewApp connects to the database, applies pending migrations and builds
// every service.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, sqlDB, err := dbx.Open(ctx, c.DatabaseDSN, &gorm.Config{Logger: dbx.NewGormLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewGormRepositoryManager()
	if err := rm.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return newApp(c, logger, db, sqlDB, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *gorm.DB, sqlDB *sql.DB, rm repomanager.RepositoryManager) *App {
	// Signing settings are checked again on first use; this only warns early.
	if err := c.JWT.Validate(); err != nil {
		logger.Warn(context.Background(), "Token signing is misconfigured, logins will fail", "error", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenIssuer(c.JWT)

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:      services.NewAuthenticationService(db, rm, hasher, tokens, logger),
		Tokens:    tokens,
		Users:     services.NewUserService(db, rm, hasher, logger),
		Resources: services.NewResources(db, rm, logger),
		Log:       logger.With("module", "http_server"),
	})

	return &App{
		config: c,
		logger: logger,
		sqlDB:  sqlDB,
		router: router,
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, sqlDB, logger),
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
		errCh <- app.router.Start(app.config.EndpointAddrHTTP)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
		}
		cancelFunc()
		return
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.router.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or one
// of the servers fails, then stops both and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.sqlDB.Close(); err != nil {
		app.logger.Error(ctx, "Failed to close database", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
