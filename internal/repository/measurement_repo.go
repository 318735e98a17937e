package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type MeasurementRepository struct {
	db *sql.DB
}

func NewMeasurementRepository(db *sql.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

const measurementColumns = `id, user_id, date, weight, body_fat, muscle_mass, chest, waist, hips, arms, thighs, notes, created_at`

func scanMeasurement(row scanner) (*domain.Measurement, error) {
	var m domain.Measurement
	err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.Weight, &m.BodyFat, &m.MuscleMass,
		&m.Chest, &m.Waist, &m.Hips, &m.Arms, &m.Thighs, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO measurements (user_id, date, weight, body_fat, muscle_mass, chest, waist, hips, arms, thighs, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Date, m.Weight, m.BodyFat, m.MuscleMass, m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs, m.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create measurement: %w", err)
	}
	return result.LastInsertId()
}

func (r *MeasurementRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Measurement, error) {
	m, err := scanMeasurement(r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+` FROM measurements WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement: %w", err)
	}
	return m, nil
}

func (r *MeasurementRepository) Latest(ctx context.Context, userID int64) (*domain.Measurement, error) {
	m, err := scanMeasurement(r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+` FROM measurements WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT 1`, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest measurement: %w", err)
	}
	return m, nil
}

func (r *MeasurementRepository) List(ctx context.Context, userID int64, f domain.MeasurementFilter) ([]domain.Measurement, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, *f.To)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+measurementColumns+` FROM measurements WHERE `+strings.Join(where, " AND ")+` ORDER BY date DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	defer rows.Close()

	var out []domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MeasurementRepository) Update(ctx context.Context, m *domain.Measurement) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE measurements SET date = ?, weight = ?, body_fat = ?, muscle_mass = ?, chest = ?, waist = ?,
		 hips = ?, arms = ?, thighs = ?, notes = ? WHERE id = ? AND user_id = ?`,
		m.Date, m.Weight, m.BodyFat, m.MuscleMass, m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs, m.Notes, m.ID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update measurement: %w", err)
	}
	return requireAffected(result)
}

func (r *MeasurementRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}
	return requireAffected(result)
}
