package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type ProfileRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.HealthProfile, error) {
	var p domain.HealthProfile
	var gender sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, age, gender, activity_level, target_weight, weight, height, bmi, bmr, last_updated, created_at
		 FROM health_profiles WHERE user_id = ?`, userID,
	).Scan(&p.ID, &p.UserID, &p.Age, &gender, &p.ActivityLevel, &p.TargetWeight,
		&p.CurrentMetrics.Weight, &p.CurrentMetrics.Height, &p.CurrentMetrics.BMI, &p.CurrentMetrics.BMR,
		&p.LastUpdated, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	return &p, nil
}

// Save recomputes the derived metrics and upserts the profile.
func (r *ProfileRepository) Save(ctx context.Context, p *domain.HealthProfile) error {
	p.Recompute(r.now())
	if p.ActivityLevel == "" {
		p.ActivityLevel = "moderate"
	}

	m := p.CurrentMetrics
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO health_profiles (user_id, age, gender, activity_level, target_weight, weight, height, bmi, bmr, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE age = VALUES(age), gender = VALUES(gender), activity_level = VALUES(activity_level),
		 target_weight = VALUES(target_weight), weight = VALUES(weight), height = VALUES(height),
		 bmi = VALUES(bmi), bmr = VALUES(bmr), last_updated = VALUES(last_updated)`,
		p.UserID, p.Age, p.Gender, p.ActivityLevel, p.TargetWeight, m.Weight, m.Height, m.BMI, m.BMR, p.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save health profile: %w", err)
	}
	return nil
}
