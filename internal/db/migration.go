package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				name          VARCHAR(100) NOT NULL,
				is_active     TINYINT(1) NOT NULL DEFAULT 1,
				last_login    DATETIME NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_auth_tokens",
		sql: `
			CREATE TABLE IF NOT EXISTS refresh_tokens (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL UNIQUE,
				token_hash CHAR(64) NOT NULL UNIQUE,
				expires_at DATETIME NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_refresh_expires (expires_at),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS password_reset_tokens (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL,
				token      VARCHAR(6) NOT NULL,
				expires_at DATETIME NOT NULL,
				used       TINYINT(1) NOT NULL DEFAULT 0,
				attempts   INT NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_reset_user (user_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_measurements",
		sql: `
			CREATE TABLE IF NOT EXISTS health_profiles (
				id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id        BIGINT UNSIGNED NOT NULL UNIQUE,
				age            INT NULL,
				gender         VARCHAR(10) NULL,
				activity_level VARCHAR(20) NOT NULL DEFAULT 'moderate',
				target_weight  DOUBLE NULL,
				weight         DOUBLE NULL,
				height         DOUBLE NULL,
				bmi            DOUBLE NULL,
				bmr            DOUBLE NULL,
				last_updated   DATETIME NOT NULL,
				created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS measurements (
				id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id     BIGINT UNSIGNED NOT NULL,
				date        DATETIME NOT NULL,
				weight      DOUBLE NULL,
				body_fat    DOUBLE NULL,
				muscle_mass DOUBLE NULL,
				chest       DOUBLE NULL,
				waist       DOUBLE NULL,
				hips        DOUBLE NULL,
				arms        DOUBLE NULL,
				thighs      DOUBLE NULL,
				notes       VARCHAR(500) NOT NULL DEFAULT '',
				created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_measurements_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_gallery",
		sql: `
			CREATE TABLE IF NOT EXISTS gallery_photos (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL,
				url        VARCHAR(500) NOT NULL,
				category   VARCHAR(20) NOT NULL DEFAULT 'progress',
				taken_at   DATETIME NOT NULL,
				weight     DOUBLE NULL,
				notes      VARCHAR(500) NOT NULL DEFAULT '',
				tags       JSON NOT NULL,
				is_private TINYINT(1) NOT NULL DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_photos_user_taken (user_id, taken_at),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS gallery_comparisons (
				id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id         BIGINT UNSIGNED NOT NULL,
				title           VARCHAR(100) NOT NULL,
				before_photo_id BIGINT UNSIGNED NOT NULL,
				after_photo_id  BIGINT UNSIGNED NOT NULL,
				measurements    JSON NOT NULL,
				notes           VARCHAR(1000) NOT NULL DEFAULT '',
				created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_comparisons_user (user_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (before_photo_id) REFERENCES gallery_photos(id) ON DELETE CASCADE,
				FOREIGN KEY (after_photo_id) REFERENCES gallery_photos(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "004_create_goals",
		sql: `
			CREATE TABLE IF NOT EXISTS goals (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id       BIGINT UNSIGNED NOT NULL,
				title         VARCHAR(100) NOT NULL,
				description   VARCHAR(500) NOT NULL DEFAULT '',
				type          VARCHAR(20) NOT NULL,
				target_value  DOUBLE NOT NULL DEFAULT 0,
				current_value DOUBLE NOT NULL DEFAULT 0,
				start_value   DOUBLE NOT NULL DEFAULT 0,
				unit          VARCHAR(20) NOT NULL DEFAULT '',
				progress      DOUBLE NOT NULL DEFAULT 0,
				status        VARCHAR(20) NOT NULL DEFAULT 'active',
				start_date    DATETIME NOT NULL,
				deadline      DATETIME NULL,
				completed_at  DATETIME NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_goals_user_status (user_id, status),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS reminders (
				id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id          BIGINT UNSIGNED NOT NULL,
				goal_id          BIGINT UNSIGNED NULL,
				title            VARCHAR(100) NOT NULL,
				message          VARCHAR(300) NOT NULL DEFAULT '',
				type             VARCHAR(20) NOT NULL,
				frequency        VARCHAR(10) NOT NULL,
				custom_interval  INT NULL,
				custom_unit      VARCHAR(10) NULL,
				scheduled_hour   TINYINT NOT NULL DEFAULT 9,
				scheduled_minute TINYINT NOT NULL DEFAULT 0,
				is_active        TINYINT(1) NOT NULL DEFAULT 1,
				next_scheduled   DATETIME NULL,
				last_triggered   DATETIME NULL,
				created_at       DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at       DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_reminders_user (user_id),
				INDEX idx_reminders_due (is_active, next_scheduled),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE SET NULL
			)`,
	},
	{
		version: "005_create_workouts",
		sql: `
			CREATE TABLE IF NOT EXISTS workouts (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL,
				name       VARCHAR(100) NOT NULL,
				type       VARCHAR(20) NOT NULL,
				date       DATETIME NOT NULL,
				duration   INT NOT NULL DEFAULT 0,
				calories   INT NULL,
				intensity  VARCHAR(10) NOT NULL DEFAULT 'medium',
				exercises  JSON NOT NULL,
				notes      VARCHAR(1000) NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_workouts_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS workout_timers (
				id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id           BIGINT UNSIGNED NOT NULL,
				workout_id        BIGINT UNSIGNED NULL,
				name              VARCHAR(100) NOT NULL,
				status            VARCHAR(10) NOT NULL DEFAULT 'idle',
				start_time        DATETIME(3) NULL,
				end_time          DATETIME(3) NULL,
				paused_at         DATETIME(3) NULL,
				total_paused_time BIGINT NOT NULL DEFAULT 0,
				planned_duration  BIGINT NOT NULL DEFAULT 0,
				actual_duration   BIGINT NOT NULL DEFAULT 0,
				exercises         JSON NOT NULL,
				created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at        DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_timers_user (user_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE SET NULL
			)`,
	},
	{
		version: "006_create_shopping_settings",
		sql: `
			CREATE TABLE IF NOT EXISTS shopping_lists (
				id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id         BIGINT UNSIGNED NOT NULL,
				name            VARCHAR(100) NOT NULL,
				items           JSON NOT NULL,
				total_items     INT NOT NULL DEFAULT 0,
				purchased_items INT NOT NULL DEFAULT 0,
				estimated_total DOUBLE NOT NULL DEFAULT 0,
				is_completed    TINYINT(1) NOT NULL DEFAULT 0,
				created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_shopping_user (user_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS user_settings (
				user_id       BIGINT UNSIGNED PRIMARY KEY,
				units         VARCHAR(10) NOT NULL,
				language      VARCHAR(5) NOT NULL,
				theme         VARCHAR(10) NOT NULL,
				week_start    VARCHAR(10) NOT NULL,
				timezone      VARCHAR(64) NOT NULL,
				notifications JSON NOT NULL,
				privacy       JSON NOT NULL,
				timer         JSON NOT NULL,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "007_create_dashboard_stats",
		sql: `
			CREATE TABLE IF NOT EXISTS dashboard_stats (
				id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id             BIGINT UNSIGNED NOT NULL,
				date                DATE NOT NULL,
				workouts_this_week  INT NOT NULL DEFAULT 0,
				minutes_this_week   INT NOT NULL DEFAULT 0,
				calories_this_week  INT NOT NULL DEFAULT 0,
				total_workouts      INT NOT NULL DEFAULT 0,
				active_goals        INT NOT NULL DEFAULT 0,
				completed_goals     INT NOT NULL DEFAULT 0,
				current_weight      DOUBLE NULL,
				weight_change_30d   DOUBLE NULL,
				photos_count        INT NOT NULL DEFAULT 0,
				active_reminders    INT NOT NULL DEFAULT 0,
				pending_shopping    INT NOT NULL DEFAULT 0,
				timer_seconds_week  BIGINT NOT NULL DEFAULT 0,
				updated_at          DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				UNIQUE KEY uq_dashboard_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
}

// Versions lists the migration versions in apply order.
func Versions() []string {
	out := make([]string, len(migrations))
	for i, m := range migrations {
		out[i] = m.version
	}
	return out
}

func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(ctx, db, m); err != nil {
			return err
		}

		log.Info("applied migration", zap.String("version", m.version))
	}

	return nil
}

func isMigrationApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func executeMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range splitStatements(m.sql) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
