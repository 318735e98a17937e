package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type GoalRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db, now: time.Now}
}

const goalColumns = `id, user_id, title, description, type, target_value, current_value, start_value, unit,
	progress, status, start_date, deadline, completed_at, created_at, updated_at`

func scanGoal(row scanner) (*domain.Goal, error) {
	var g domain.Goal
	var deadline, completedAt sql.NullTime
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.TargetValue, &g.CurrentValue,
		&g.StartValue, &g.Unit, &g.Progress, &g.Status, &g.StartDate, &deadline, &completedAt,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Deadline = timePtr(deadline)
	g.CompletedAt = timePtr(completedAt)
	return &g, nil
}

// Create recomputes progress and completion before inserting.
func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) (int64, error) {
	g.Recompute(r.now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, title, description, type, target_value, current_value, start_value, unit,
		 progress, status, start_date, deadline, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.Description, g.Type, g.TargetValue, g.CurrentValue, g.StartValue, g.Unit,
		g.Progress, g.Status, g.StartDate, nullTime(g.Deadline), nullTime(g.CompletedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}
	return result.LastInsertId()
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	g, err := scanGoal(r.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepository) List(ctx context.Context, userID int64, status string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Update recomputes progress and completion before writing.
func (r *GoalRepository) Update(ctx context.Context, g *domain.Goal) error {
	g.Recompute(r.now())
	result, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, description = ?, type = ?, target_value = ?, current_value = ?, start_value = ?,
		 unit = ?, progress = ?, status = ?, start_date = ?, deadline = ?, completed_at = ?
		 WHERE id = ? AND user_id = ?`,
		g.Title, g.Description, g.Type, g.TargetValue, g.CurrentValue, g.StartValue,
		g.Unit, g.Progress, g.Status, g.StartDate, nullTime(g.Deadline), nullTime(g.CompletedAt),
		g.ID, g.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireAffected(result)
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireAffected(result)
}
