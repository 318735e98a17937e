package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type TimerRepository struct {
	db *sql.DB
}

func NewTimerRepository(db *sql.DB) *TimerRepository {
	return &TimerRepository{db: db}
}

const timerColumns = `id, user_id, workout_id, name, status, start_time, end_time, paused_at, total_paused_time,
	planned_duration, actual_duration, exercises, created_at, updated_at`

func scanTimer(row scanner) (*domain.WorkoutTimer, error) {
	var t domain.WorkoutTimer
	var workoutID sql.NullInt64
	var start, end, paused sql.NullTime
	var exercises []byte
	err := row.Scan(&t.ID, &t.UserID, &workoutID, &t.Name, &t.Status, &start, &end, &paused,
		&t.TotalPausedTime, &t.PlannedDuration, &t.ActualDuration, &exercises, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if workoutID.Valid {
		t.WorkoutID = &workoutID.Int64
	}
	t.StartTime = timePtr(start)
	t.EndTime = timePtr(end)
	t.PausedAt = timePtr(paused)
	if err := decodeJSON(exercises, &t.Exercises); err != nil {
		return nil, err
	}
	if t.Exercises == nil {
		t.Exercises = []domain.TimerExercise{}
	}
	return &t, nil
}

// Create rolls up durations before inserting.
func (r *TimerRepository) Create(ctx context.Context, t *domain.WorkoutTimer) (int64, error) {
	t.Recompute()
	exercises, err := encodeJSON(t.Exercises)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_timers (user_id, workout_id, name, status, start_time, end_time, paused_at,
		 total_paused_time, planned_duration, actual_duration, exercises)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.WorkoutID, t.Name, t.Status, nullTime(t.StartTime), nullTime(t.EndTime), nullTime(t.PausedAt),
		t.TotalPausedTime, t.PlannedDuration, t.ActualDuration, exercises,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create timer: %w", err)
	}
	return result.LastInsertId()
}

func (r *TimerRepository) GetByID(ctx context.Context, userID, id int64) (*domain.WorkoutTimer, error) {
	t, err := scanTimer(r.db.QueryRowContext(ctx,
		`SELECT `+timerColumns+` FROM workout_timers WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timer: %w", err)
	}
	return t, nil
}

func (r *TimerRepository) List(ctx context.Context, userID int64) ([]domain.WorkoutTimer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timerColumns+` FROM workout_timers WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkoutTimer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timer: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update rolls up durations before writing.
func (r *TimerRepository) Update(ctx context.Context, t *domain.WorkoutTimer) error {
	t.Recompute()
	exercises, err := encodeJSON(t.Exercises)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE workout_timers SET workout_id = ?, name = ?, status = ?, start_time = ?, end_time = ?, paused_at = ?,
		 total_paused_time = ?, planned_duration = ?, actual_duration = ?, exercises = ?
		 WHERE id = ? AND user_id = ?`,
		t.WorkoutID, t.Name, t.Status, nullTime(t.StartTime), nullTime(t.EndTime), nullTime(t.PausedAt),
		t.TotalPausedTime, t.PlannedDuration, t.ActualDuration, exercises, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timer: %w", err)
	}
	return requireAffected(result)
}

func (r *TimerRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workout_timers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete timer: %w", err)
	}
	return requireAffected(result)
}
