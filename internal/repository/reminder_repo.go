package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type ReminderRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewReminderRepository schedules reminders on the wall clock of loc.
func NewReminderRepository(db *sql.DB, loc *time.Location) *ReminderRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderRepository{db: db, now: func() time.Time { return time.Now().In(loc) }}
}

const reminderColumns = `id, user_id, goal_id, title, message, type, frequency, custom_interval, custom_unit,
	scheduled_hour, scheduled_minute, is_active, next_scheduled, last_triggered, created_at, updated_at`

func scanReminder(row scanner) (*domain.Reminder, error) {
	var rem domain.Reminder
	var goalID, interval sql.NullInt64
	var unit sql.NullString
	var next, last sql.NullTime
	err := row.Scan(&rem.ID, &rem.UserID, &goalID, &rem.Title, &rem.Message, &rem.Type, &rem.Frequency,
		&interval, &unit, &rem.ScheduledTime.Hour, &rem.ScheduledTime.Minute, &rem.IsActive,
		&next, &last, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if goalID.Valid {
		rem.GoalID = &goalID.Int64
	}
	if interval.Valid && unit.Valid {
		rem.CustomFrequency = &domain.CustomFrequency{Interval: int(interval.Int64), Unit: unit.String}
	}
	rem.NextScheduled = timePtr(next)
	rem.LastTriggered = timePtr(last)
	return &rem, nil
}

func customColumns(cf *domain.CustomFrequency) (sql.NullInt64, sql.NullString) {
	if cf == nil {
		return sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: int64(cf.Interval), Valid: true}, sql.NullString{String: cf.Unit, Valid: true}
}

// Create schedules the next occurrence before inserting.
func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) (int64, error) {
	rem.Recompute(r.now())
	interval, unit := customColumns(rem.CustomFrequency)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (user_id, goal_id, title, message, type, frequency, custom_interval, custom_unit,
		 scheduled_hour, scheduled_minute, is_active, next_scheduled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rem.UserID, rem.GoalID, rem.Title, rem.Message, rem.Type, rem.Frequency, interval, unit,
		rem.ScheduledTime.Hour, rem.ScheduledTime.Minute, rem.IsActive, nullTime(rem.NextScheduled),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create reminder: %w", err)
	}
	return result.LastInsertId()
}

func (r *ReminderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Reminder, error) {
	rem, err := scanReminder(r.db.QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return rem, nil
}

func (r *ReminderRepository) List(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var out []domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		out = append(out, *rem)
	}
	return out, rows.Err()
}

// Update reschedules the reminder before writing.
func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	rem.Recompute(r.now())
	interval, unit := customColumns(rem.CustomFrequency)
	result, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET goal_id = ?, title = ?, message = ?, type = ?, frequency = ?, custom_interval = ?,
		 custom_unit = ?, scheduled_hour = ?, scheduled_minute = ?, is_active = ?, next_scheduled = ?
		 WHERE id = ? AND user_id = ?`,
		rem.GoalID, rem.Title, rem.Message, rem.Type, rem.Frequency, interval,
		unit, rem.ScheduledTime.Hour, rem.ScheduledTime.Minute, rem.IsActive, nullTime(rem.NextScheduled),
		rem.ID, rem.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return requireAffected(result)
}

// Toggle flips IsActive and persists the rescheduled reminder.
func (r *ReminderRepository) Toggle(ctx context.Context, userID, id int64) (*domain.Reminder, error) {
	rem, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	rem.IsActive = !rem.IsActive
	if err := r.Update(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return requireAffected(result)
}
