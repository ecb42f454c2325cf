package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq"

	"communitypulse/config"
	_ "communitypulse/docs"
	authadapter "communitypulse/internal/adapters/auth"
	emailadapter "communitypulse/internal/adapters/email"
	"communitypulse/internal/adapters/geocode"
	delivery "communitypulse/internal/delivery/http"
	"communitypulse/internal/delivery/http/controllers"
	"communitypulse/internal/domain"
	"communitypulse/internal/repository/postgres"
	"communitypulse/internal/scheduler"
	"communitypulse/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Community Events API
// @version 1.0
// @description Community event bulletin: event submission, moderation, interest registration, and daily reminders.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database ready")

	// Adapters
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer := emailadapter.NewTemplateRenderer()
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	var geocoder domain.Geocoder
	if cfg.GeocodingEnabled {
		geocoder = geocode.NewNominatimGeocoder(&http.Client{Timeout: 10 * time.Second}, cfg.GeocodingUserAgent)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	eventService := services.NewEventService(eventRepo, interestRepo, userRepo, emailService, geocoder, logger, serviceTimeout)
	interestService := services.NewInterestService(interestRepo, eventRepo, serviceTimeout)
	userService := services.NewUserService(userRepo, hasher, issuer, serviceTimeout)
	reminderService := services.NewReminderService(eventRepo, userRepo, emailService, logger)

	// HTTP
	eventController := controllers.NewEventController(logger, eventService, interestService)
	userController := controllers.NewUserController(logger, userService)
	authController := controllers.NewAuthController(logger, userService)
	router := delivery.NewRouter(logger, verifier, cfg.CORSAllowedOrigins, eventController, userController, authController)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	daily := scheduler.NewDaily(cfg.ReminderHour, logger, reminderService.Run)
	go daily.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrations(db *sql.DB, path string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
