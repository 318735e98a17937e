package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fittrack-backend/internal/config"
	"github.com/yusufkecer/fittrack-backend/internal/logger"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Fitness tracking REST API",
	Long: `fittrack serves the fitness tracking API: workouts, goals and reminders,
body measurements, progress photos, live workout timers, shopping lists,
user settings, a daily dashboard and an AI coach.

Configuration is read from the environment (and an optional .env file):

  PORT, APP_ENV, LOG_LEVEL, TIMEZONE
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
  JWT_SECRET, ACCESS_TOKEN_TTL, REFRESH_TOKEN_TTL, API_KEY, ALLOWED_ORIGINS
  SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM
  OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL, OPENAI_TIMEOUT
  JANITOR_SCHEDULE`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err = logger.New(cfg.LogLevel, !cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
