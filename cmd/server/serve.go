package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fittrack-backend/internal/db"
	"github.com/yusufkecer/fittrack-backend/internal/handler"
	"github.com/yusufkecer/fittrack-backend/internal/jobs"
	"github.com/yusufkecer/fittrack-backend/internal/metrics"
	"github.com/yusufkecer/fittrack-backend/internal/middleware"
	"github.com/yusufkecer/fittrack-backend/internal/repository"
	"github.com/yusufkecer/fittrack-backend/internal/service"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func runServer(ctx context.Context) error {
	database, err := db.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database, log); err != nil {
		return err
	}

	loc := cfg.Location()
	development := !cfg.IsProduction()

	userRepo := repository.NewUserRepository(database)
	refreshRepo := repository.NewRefreshTokenRepository(database)
	resetRepo := repository.NewResetTokenRepository(database)
	goalRepo := repository.NewGoalRepository(database)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL)
	mailer := service.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	authService := service.NewAuthService(userRepo, refreshRepo, resetRepo, mailer, tokens, cfg.RefreshTTL, log)
	aiService, err := service.NewAIService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITimeout)
	if err != nil {
		return err
	}
	if !aiService.Enabled() {
		log.Warn("OPENAI_API_KEY not set, AI endpoints will answer 503")
	}

	base := handler.NewBase(log, development)
	authHandler := handler.NewAuthHandler(base, authService)
	m := metrics.New()
	loginLimiter := middleware.NewRateLimiter(5, 15*time.Minute)
	forgotLimiter := middleware.NewRateLimiter(3, 60*time.Minute)
	resetLimiter := middleware.NewRateLimiter(5, 15*time.Minute)
	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	router := newRouter(routes{
		log:            log,
		metrics:        m,
		tokens:         tokens,
		accounts:       userRepo,
		proxies:        proxies,
		apiKey:         cfg.APIKey,
		allowedOrigins: cfg.AllowedOrigins,
		loginLimiter:   loginLimiter,
		forgotLimiter:  forgotLimiter,
		resetLimiter:   resetLimiter,

		health:       handler.NewHealthHandler(database),
		auth:         authHandler,
		workouts:     handler.NewWorkoutHandler(base, repository.NewWorkoutRepository(database)),
		goals:        handler.NewGoalHandler(base, goalRepo),
		reminders:    handler.NewReminderHandler(base, repository.NewReminderRepository(database, loc), goalRepo),
		measurements: handler.NewMeasurementHandler(base, repository.NewMeasurementRepository(database), repository.NewProfileRepository(database)),
		gallery:      handler.NewGalleryHandler(base, repository.NewGalleryRepository(database)),
		timers:       handler.NewTimerHandler(base, repository.NewTimerRepository(database)),
		shopping:     handler.NewShoppingHandler(base, repository.NewShoppingRepository(database)),
		settings:     handler.NewSettingsHandler(base, repository.NewSettingsRepository(database)),
		dashboard:    handler.NewDashboardHandler(base, repository.NewDashboardRepository(database, loc)),
		ai:           handler.NewAIHandler(base, aiService),
	})

	janitor := jobs.NewJanitor(
		map[string]jobs.ExpiredPurger{
			"refresh_tokens":        refreshRepo,
			"password_reset_tokens": resetRepo,
		},
		[]jobs.Cleaner{loginLimiter, forgotLimiter, resetLimiter},
		m,
		log,
	)
	if err := janitor.Start(cfg.JanitorSpec); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	janitor.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := authHandler.Wait(shutdownCtx); err != nil {
		log.Warn("password reset mail still pending at shutdown", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}
