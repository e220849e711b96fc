package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"project-hub.com/project-hub/internal/auth"
	config "project-hub.com/project-hub/internal/configs"
	httpapi "project-hub.com/project-hub/internal/http"
	"project-hub.com/project-hub/internal/mail"
	repository "project-hub.com/project-hub/internal/repositories"
	"project-hub.com/project-hub/internal/security"
	"project-hub.com/project-hub/internal/services"
	"project-hub.com/project-hub/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the project management HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		bootLog := config.NewLogger("info", true)
		cfg := config.Load(bootLog)
		log := config.NewLogger(cfg.LogLevel, cfg.IsDevelopment())

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}

		var (
			sessionStore sessions.Store
			redisPinger  httpapi.Pinger
		)
		if cfg.SessionStore == "redis" {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			store := sessions.NewRedisStore(redisClient, cfg.SessionKeyPrefix)
			sessionStore = store
			redisPinger = store
		} else {
			log.Warn().Msg("using in-memory sessions; they will not survive a restart")
			sessionStore = sessions.NewMemoryStore()
		}

		userRepo := repository.NewUserRepository(database)
		projectRepo := repository.NewProjectRepository(database)
		memberRepo := repository.NewMemberRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		commentRepo := repository.NewCommentRepository(database)
		reminderRepo := repository.NewReminderRepository(database)

		reminderService := services.NewReminderService(reminderRepo, log)
		membershipService := services.NewMembershipService(projectRepo, memberRepo, userRepo, cfg.AppBaseURL, log)
		authService := services.NewAuthService(
			userRepo,
			security.NewArgon2Hasher(security.DefaultArgon2Params()),
			auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
			sessionStore,
			time.Duration(cfg.SessionTTLMinutes)*time.Minute,
			mail.NewLogMailer(log),
			membershipService,
			time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
			log,
		)

		oauthEnabled := auth.InitOAuthProviders(
			cfg.AppBaseURL,
			cfg.OAuthSessionSecret,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			!cfg.IsDevelopment(),
		)

		handler := httpapi.NewHandler(httpapi.Services{
			Auth:        authService,
			Users:       services.NewUserService(userRepo, log),
			Projects:    services.NewProjectService(projectRepo, memberRepo, taskRepo, log),
			Memberships: membershipService,
			Tasks:       services.NewTaskService(taskRepo, memberRepo, reminderService, log),
			Comments:    services.NewCommentService(commentRepo, taskRepo),
			Reminders:   reminderService,
		}, httpapi.HandlerOptions{
			Health:       httpapi.NewHealthChecker(database, redisPinger),
			OAuthEnabled: oauthEnabled,
			SecureCookie: !cfg.IsDevelopment(),
		}, log)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, handler, httpapi.RouteOptions{
			RateLimitPerMinute: cfg.RateLimit,
			CORSOrigins:        cfg.CORSOrigins,
			Development:        cfg.IsDevelopment(),
		}, log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Info().Str("addr", cfg.AppURL).Bool("google_oauth", oauthEnabled).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown failed")
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
