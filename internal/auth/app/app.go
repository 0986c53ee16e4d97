package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/hibritu/hirehub/internal/auth/http"
	"github.com/hibritu/hirehub/internal/auth/mail"
	"github.com/hibritu/hirehub/internal/auth/redirect"
	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/postgres"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/sqlite"
	"github.com/hibritu/hirehub/pkg/cryptox"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/hibritu/hirehub/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	signer     *jwtx.HS256Signer
	verifier   *jwtx.HS256Verifier
	dispatcher *mail.Dispatcher
	templates  *mail.Templates

	// Services
	tokenService        *service.TokenService
	verificationService *service.VerificationService
	accountService      *service.AccountService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitTokenKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT secret: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	if err := app.initMail(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown stops accepting requests, lets background mail finish within the
// grace period and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Reset mail is delivered in the background; give it the rest of the
	// grace period.
	if err := app.dispatcher.Wait(ctx); err != nil {
		app.logger.Warn("pending mail abandoned at shutdown", "error", err)
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initMail picks SMTP when a relay is configured. Only dev may fall back to
// logging messages.
func (app *Application) initMail() error {
	var sender mail.Sender = mail.LogSender{Logger: app.logger}

	if app.cfg.SMTP.Host == "" && !app.cfg.IsDev() {
		return errors.New("SMTP_HOST is required outside dev")
	}

	if app.cfg.SMTP.Host != "" {
		smtp, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:               app.cfg.SMTP.Host,
			Port:               app.cfg.SMTP.Port,
			Username:           app.cfg.SMTP.Username,
			Password:           app.cfg.SMTP.Password,
			From:               app.cfg.SMTP.From,
			Timeout:            app.cfg.SMTP.Timeout,
			InsecureSkipVerify: app.cfg.SMTP.InsecureSkipVerify,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp sender: %w", err)
		}
		sender = smtp
		app.logger.Info("smtp mail enabled", "host", app.cfg.SMTP.Host, "port", app.cfg.SMTP.Port)
	} else {
		app.logger.Warn("SMTP_HOST not set, emails are written to the log")
	}

	templates, err := mail.NewTemplates()
	if err != nil {
		return fmt.Errorf("failed to load mail templates: %w", err)
	}

	app.templates = templates
	app.dispatcher = mail.NewDispatcher(sender, app.logger)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	otpPolicy := mail.OTPPolicy
	otpPolicy.MaxAttempts = app.cfg.Mail.MaxAttempts
	otpPolicy.InitialInterval = app.cfg.Mail.InitialInterval

	app.tokenService = &service.TokenService{
		Signer:          app.signer,
		RefreshVerifier: app.verifier.WithType(jwtx.TypeRefresh),
		Store:           app.db,
		Issuer:          app.cfg.Issuer,
		AccessTTL:       app.cfg.AccessTTL,
		RefreshTTL:      app.cfg.RefreshTTL,
	}

	app.verificationService = &service.VerificationService{
		Store:      app.db,
		Dispatcher: app.dispatcher,
		Templates:  app.templates,
		Policy:     otpPolicy,
		TTL:        app.cfg.OTPTTL,
	}

	app.accountService = &service.AccountService{
		Store:        app.db,
		Tokens:       app.tokenService,
		Verification: app.verificationService,
		Redirects: redirect.NewRouter(role.Map[string]{
			JobSeeker: app.cfg.UserAppURL,
			Employer:  app.cfg.EmployerAppURL,
			Admin:     app.cfg.AdminAppURL,
		}),
		Dispatcher:    app.dispatcher,
		Templates:     app.templates,
		PublicBaseURL: app.cfg.PublicBaseURL,
		ResetTTL:      app.cfg.ResetTTL,
	}

	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.HousekeepingRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier.WithType(jwtx.TypeAccess),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccountService = app.accountService
	router.BootstrapService = app.bootstrapService
	router.CORSOrigins = app.cfg.CORSAllowedOrigins
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
