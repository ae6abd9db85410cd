package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpapi "github.com/firmdesk/firmdesk/internal/portal/http"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/internal/portal/storage"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/internal/portal/store/drivers/sqlite"
	"github.com/firmdesk/firmdesk/pkg/jwtx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portal service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	files    *storage.Disk
	signer   *jwtx.EdDSASigner
	verifier *jwtx.EdDSAVerifier
	notifier service.Notifier

	// Services
	identityService   *service.IdentityService
	orgService        *service.OrgService
	membershipService *service.MembershipService
	invitationService *service.InvitationService
	documentService   *service.DocumentService
	threadService     *service.ThreadService
	housekeeper       *service.Housekeeper

	// HTTP server
	server *http.Server
	router *httpapi.Router

	// Housekeeping lifecycle
	housekeepingCancel context.CancelFunc
	housekeepingDone   sync.WaitGroup
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	files, err := storage.NewDisk(cfg.StorageDir)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	app.files = files

	signer, verifier, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the housekeeping sweep
	hkCtx, cancel := context.WithCancel(context.Background())
	app.housekeepingCancel = cancel
	app.housekeepingDone.Add(1)
	go func() {
		defer app.housekeepingDone.Done()
		app.housekeeper.Run(hkCtx)
	}()

	app.logger.Info("portal starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping sweep
	if app.housekeepingCancel != nil {
		app.housekeepingCancel()
		app.housekeepingDone.Wait()
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.notifier = service.LogNotifier{}

	app.identityService = &service.IdentityService{Store: app.db}
	app.orgService = &service.OrgService{Store: app.db}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.invitationService = &service.InvitationService{
		Store:    app.db,
		Notifier: app.notifier,
	}
	app.documentService = &service.DocumentService{
		Store:    app.db,
		Files:    app.files,
		Notifier: app.notifier,
	}
	app.threadService = &service.ThreadService{
		Store:    app.db,
		Notifier: app.notifier,
	}

	app.housekeeper = &service.Housekeeper{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.StorageCheck = app.files.Check
	router.IdentityService = app.identityService
	router.OrgService = app.orgService
	router.MembershipService = app.membershipService
	router.InvitationService = app.invitationService
	router.DocumentService = app.documentService
	router.ThreadService = app.threadService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
