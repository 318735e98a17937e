package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

const photoColumns = `id, user_id, url, category, taken_at, weight, notes, tags, is_private, created_at`

func scanPhoto(row scanner) (*domain.Photo, error) {
	var p domain.Photo
	var tags []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.URL, &p.Category, &p.TakenAt, &p.Weight, &p.Notes, &tags, &p.IsPrivate, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(tags, &p.Tags); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func (r *GalleryRepository) CreatePhoto(ctx context.Context, p *domain.Photo) (int64, error) {
	tags, err := encodeJSON(p.Tags)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO gallery_photos (user_id, url, category, taken_at, weight, notes, tags, is_private)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.URL, p.Category, p.TakenAt, p.Weight, p.Notes, tags, p.IsPrivate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create photo: %w", err)
	}
	return result.LastInsertId()
}

func (r *GalleryRepository) GetPhoto(ctx context.Context, userID, id int64) (*domain.Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM gallery_photos WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

func (r *GalleryRepository) ListPhotos(ctx context.Context, userID int64, category string) ([]domain.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM gallery_photos WHERE user_id = ?`
	args := []any{userID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY taken_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var out []domain.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *GalleryRepository) UpdatePhoto(ctx context.Context, p *domain.Photo) error {
	tags, err := encodeJSON(p.Tags)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE gallery_photos SET url = ?, category = ?, taken_at = ?, weight = ?, notes = ?, tags = ?, is_private = ?
		 WHERE id = ? AND user_id = ?`,
		p.URL, p.Category, p.TakenAt, p.Weight, p.Notes, tags, p.IsPrivate, p.ID, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	return requireAffected(result)
}

func (r *GalleryRepository) DeletePhoto(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_photos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return requireAffected(result)
}

// OwnsPhotos reports whether every id belongs to the user.
func (r *GalleryRepository) OwnsPhotos(ctx context.Context, userID int64, ids ...int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	unique := map[int64]bool{}
	args := []any{userID}
	placeholders := ""
	for _, id := range ids {
		if unique[id] {
			continue
		}
		unique[id] = true
		if placeholders != "" {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id)
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gallery_photos WHERE user_id = ? AND id IN (`+placeholders+`)`, args...,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check photo ownership: %w", err)
	}
	return count == len(unique), nil
}

const comparisonColumns = `id, user_id, title, before_photo_id, after_photo_id, measurements, notes, created_at, updated_at`

func scanComparison(row scanner) (*domain.Comparison, error) {
	var c domain.Comparison
	var measurements []byte
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.BeforePhotoID, &c.AfterPhotoID, &measurements, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(measurements, &c.Measurements); err != nil {
		return nil, err
	}
	if c.Measurements == nil {
		c.Measurements = []domain.MeasurementDelta{}
	}
	return &c, nil
}

// CreateComparison recomputes the measurement deltas before inserting.
func (r *GalleryRepository) CreateComparison(ctx context.Context, c *domain.Comparison) (int64, error) {
	c.Recompute()
	measurements, err := encodeJSON(c.Measurements)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO gallery_comparisons (user_id, title, before_photo_id, after_photo_id, measurements, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Title, c.BeforePhotoID, c.AfterPhotoID, measurements, c.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create comparison: %w", err)
	}
	return result.LastInsertId()
}

func (r *GalleryRepository) GetComparison(ctx context.Context, userID, id int64) (*domain.Comparison, error) {
	c, err := scanComparison(r.db.QueryRowContext(ctx,
		`SELECT `+comparisonColumns+` FROM gallery_comparisons WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comparison: %w", err)
	}
	return c, nil
}

func (r *GalleryRepository) ListComparisons(ctx context.Context, userID int64) ([]domain.Comparison, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+comparisonColumns+` FROM gallery_comparisons WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var out []domain.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpdateComparison recomputes the measurement deltas before writing.
func (r *GalleryRepository) UpdateComparison(ctx context.Context, c *domain.Comparison) error {
	c.Recompute()
	measurements, err := encodeJSON(c.Measurements)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE gallery_comparisons SET title = ?, before_photo_id = ?, after_photo_id = ?, measurements = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		c.Title, c.BeforePhotoID, c.AfterPhotoID, measurements, c.Notes, c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comparison: %w", err)
	}
	return requireAffected(result)
}

func (r *GalleryRepository) DeleteComparison(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_comparisons WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comparison: %w", err)
	}
	return requireAffected(result)
}
