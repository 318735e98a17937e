package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

const maxHistoryDays = 365

type DashboardRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewDashboardRepository buckets snapshots by calendar day in loc.
func NewDashboardRepository(db *sql.DB, loc *time.Location) *DashboardRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardRepository{db: db, now: func() time.Time { return time.Now().In(loc) }}
}

const snapshotQuery = `
SELECT
	(SELECT COUNT(*) FROM workouts WHERE user_id = ? AND date >= ?),
	(SELECT COALESCE(SUM(duration), 0) FROM workouts WHERE user_id = ? AND date >= ?),
	(SELECT COALESCE(SUM(calories), 0) FROM workouts WHERE user_id = ? AND date >= ?),
	(SELECT COUNT(*) FROM workouts WHERE user_id = ?),
	(SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = 'active'),
	(SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = 'completed'),
	(SELECT weight FROM measurements WHERE user_id = ? AND weight IS NOT NULL ORDER BY date DESC, id DESC LIMIT 1),
	(SELECT weight FROM measurements WHERE user_id = ? AND weight IS NOT NULL AND date >= ? ORDER BY date ASC, id ASC LIMIT 1),
	(SELECT COUNT(*) FROM gallery_photos WHERE user_id = ?),
	(SELECT COUNT(*) FROM reminders WHERE user_id = ? AND is_active = 1),
	(SELECT COALESCE(SUM(total_items - purchased_items), 0) FROM shopping_lists WHERE user_id = ?),
	(SELECT COALESCE(SUM(actual_duration), 0) FROM workout_timers WHERE user_id = ? AND status = 'completed' AND end_time >= ?)`

// Compute builds today's snapshot from the other tables and stores it.
func (r *DashboardRepository) Compute(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	now := r.now()
	week := domain.WeekStart(now)
	monthAgo := now.AddDate(0, 0, -30)

	s := domain.DashboardStats{UserID: userID, Date: domain.Day(now), UpdatedAt: now}
	var current, earliest sql.NullFloat64
	err := r.db.QueryRowContext(ctx, snapshotQuery,
		userID, week,
		userID, week,
		userID, week,
		userID,
		userID,
		userID,
		userID,
		userID, monthAgo,
		userID,
		userID,
		userID,
		userID, week,
	).Scan(&s.WorkoutsThisWeek, &s.MinutesThisWeek, &s.CaloriesThisWeek, &s.TotalWorkouts,
		&s.ActiveGoals, &s.CompletedGoals, &current, &earliest, &s.PhotosCount,
		&s.ActiveReminders, &s.PendingShopping, &s.TimerSecondsWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	if current.Valid {
		w := current.Float64
		s.CurrentWeight = &w
		if earliest.Valid {
			change := w - earliest.Float64
			s.WeightChange30d = &change
		}
	}

	if err := r.upsert(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DashboardRepository) upsert(ctx context.Context, s *domain.DashboardStats) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dashboard_stats (user_id, date, workouts_this_week, minutes_this_week, calories_this_week,
		 total_workouts, active_goals, completed_goals, current_weight, weight_change_30d, photos_count,
		 active_reminders, pending_shopping, timer_seconds_week)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE workouts_this_week = VALUES(workouts_this_week),
		 minutes_this_week = VALUES(minutes_this_week), calories_this_week = VALUES(calories_this_week),
		 total_workouts = VALUES(total_workouts), active_goals = VALUES(active_goals),
		 completed_goals = VALUES(completed_goals), current_weight = VALUES(current_weight),
		 weight_change_30d = VALUES(weight_change_30d), photos_count = VALUES(photos_count),
		 active_reminders = VALUES(active_reminders), pending_shopping = VALUES(pending_shopping),
		 timer_seconds_week = VALUES(timer_seconds_week)`,
		s.UserID, s.Date.Format(time.DateOnly), s.WorkoutsThisWeek, s.MinutesThisWeek, s.CaloriesThisWeek,
		s.TotalWorkouts, s.ActiveGoals, s.CompletedGoals, s.CurrentWeight, s.WeightChange30d, s.PhotosCount,
		s.ActiveReminders, s.PendingShopping, s.TimerSecondsWeek,
	)
	if err != nil {
		return fmt.Errorf("failed to save dashboard stats: %w", err)
	}
	return nil
}

// History returns the stored snapshots of the last days days, newest first.
func (r *DashboardRepository) History(ctx context.Context, userID int64, days int) ([]domain.DashboardStats, error) {
	if days <= 0 {
		days = 7
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	since := domain.Day(r.now()).AddDate(0, 0, -(days - 1)).Format(time.DateOnly)

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, date, workouts_this_week, minutes_this_week, calories_this_week, total_workouts,
		 active_goals, completed_goals, current_weight, weight_change_30d, photos_count, active_reminders,
		 pending_shopping, timer_seconds_week, updated_at
		 FROM dashboard_stats WHERE user_id = ? AND date >= ? ORDER BY date DESC`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list dashboard history: %w", err)
	}
	defer rows.Close()

	out := []domain.DashboardStats{}
	for rows.Next() {
		var s domain.DashboardStats
		if err := rows.Scan(&s.UserID, &s.Date, &s.WorkoutsThisWeek, &s.MinutesThisWeek, &s.CaloriesThisWeek,
			&s.TotalWorkouts, &s.ActiveGoals, &s.CompletedGoals, &s.CurrentWeight, &s.WeightChange30d,
			&s.PhotosCount, &s.ActiveReminders, &s.PendingShopping, &s.TimerSecondsWeek, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
