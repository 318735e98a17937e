package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns nil, nil when the user has not saved settings yet.
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*domain.Settings, error) {
	s := domain.Settings{UserID: userID}
	var notifications, privacy, timer []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT units, language, theme, week_start, timezone, notifications, privacy, timer, updated_at
		 FROM user_settings WHERE user_id = ?`, userID,
	).Scan(&s.Units, &s.Language, &s.Theme, &s.WeekStart, &s.Timezone, &notifications, &privacy, &timer, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := decodeJSON(notifications, &s.Notifications); err != nil {
		return nil, err
	}
	if err := decodeJSON(privacy, &s.Privacy); err != nil {
		return nil, err
	}
	if err := decodeJSON(timer, &s.Timer); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	notifications, err := encodeJSON(s.Notifications)
	if err != nil {
		return err
	}
	privacy, err := encodeJSON(s.Privacy)
	if err != nil {
		return err
	}
	timer, err := encodeJSON(s.Timer)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, units, language, theme, week_start, timezone, notifications, privacy, timer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE units = VALUES(units), language = VALUES(language), theme = VALUES(theme),
		 week_start = VALUES(week_start), timezone = VALUES(timezone), notifications = VALUES(notifications),
		 privacy = VALUES(privacy), timer = VALUES(timer)`,
		s.UserID, s.Units, s.Language, s.Theme, s.WeekStart, s.Timezone, notifications, privacy, timer,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_settings WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}
