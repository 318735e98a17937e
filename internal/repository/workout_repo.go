package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

const (
	defaultWorkoutLimit = 20
	maxWorkoutLimit     = 100
)

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

const workoutColumns = `id, user_id, name, type, date, duration, calories, intensity, exercises, notes, created_at, updated_at`

func scanWorkout(row scanner) (*domain.Workout, error) {
	var w domain.Workout
	var calories sql.NullInt64
	var exercises []byte
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.Date, &w.Duration, &calories, &w.Intensity,
		&exercises, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if calories.Valid {
		c := int(calories.Int64)
		w.Calories = &c
	}
	if err := decodeJSON(exercises, &w.Exercises); err != nil {
		return nil, err
	}
	if w.Exercises == nil {
		w.Exercises = []domain.Exercise{}
	}
	return &w, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) (int64, error) {
	exercises, err := encodeJSON(w.Exercises)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (user_id, name, type, date, duration, calories, intensity, exercises, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.UserID, w.Name, w.Type, w.Date, w.Duration, w.Calories, w.Intensity, exercises, w.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create workout: %w", err)
	}
	return result.LastInsertId()
}

func (r *WorkoutRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Workout, error) {
	w, err := scanWorkout(r.db.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return w, nil
}

// List returns a page of workouts, newest first. The limit is clamped to
// [1, 100] with a default of 20.
func (r *WorkoutRepository) List(ctx context.Context, userID int64, f domain.WorkoutFilter) ([]domain.Workout, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultWorkoutLimit
	}
	if limit > maxWorkoutLimit {
		limit = maxWorkoutLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = ?`
	args := []any{userID}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, f.Type)
	}
	query += ` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (r *WorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	exercises, err := encodeJSON(w.Exercises)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE workouts SET name = ?, type = ?, date = ?, duration = ?, calories = ?, intensity = ?, exercises = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		w.Name, w.Type, w.Date, w.Duration, w.Calories, w.Intensity, exercises, w.Notes, w.ID, w.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	return requireAffected(result)
}

func (r *WorkoutRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return requireAffected(result)
}

// Stats aggregates the user's workouts per type.
func (r *WorkoutRepository) Stats(ctx context.Context, userID int64) (*domain.WorkoutStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT type, COUNT(*), COALESCE(SUM(duration), 0), COALESCE(SUM(calories), 0)
		 FROM workouts WHERE user_id = ? GROUP BY type ORDER BY type`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate workouts: %w", err)
	}
	defer rows.Close()

	stats := &domain.WorkoutStats{ByType: []domain.WorkoutTypeStats{}}
	for rows.Next() {
		var s domain.WorkoutTypeStats
		if err := rows.Scan(&s.Type, &s.Count, &s.TotalMinutes, &s.TotalCalories); err != nil {
			return nil, fmt.Errorf("failed to scan workout stats: %w", err)
		}
		stats.TotalWorkouts += s.Count
		stats.TotalMinutes += s.TotalMinutes
		stats.TotalCalories += s.TotalCalories
		stats.ByType = append(stats.ByType, s)
	}
	return stats, rows.Err()
}
