package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type memGallery struct {
	photos      map[int64]domain.Photo
	comparisons map[int64]domain.Comparison
}

func newMemGallery() *memGallery {
	return &memGallery{photos: map[int64]domain.Photo{}, comparisons: map[int64]domain.Comparison{}}
}

func (m *memGallery) CreatePhoto(_ context.Context, p *domain.Photo) (int64, error) {
	p.ID = int64(len(m.photos) + 1)
	m.photos[p.ID] = *p
	return p.ID, nil
}

func (m *memGallery) GetPhoto(_ context.Context, userID, id int64) (*domain.Photo, error) {
	p, ok := m.photos[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memGallery) ListPhotos(_ context.Context, userID int64, category string) ([]domain.Photo, error) {
	var out []domain.Photo
	for _, p := range m.photos {
		if p.UserID == userID && (category == "" || p.Category == category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memGallery) UpdatePhoto(_ context.Context, p *domain.Photo) error {
	m.photos[p.ID] = *p
	return nil
}

func (m *memGallery) DeletePhoto(_ context.Context, userID, id int64) error {
	if _, err := m.GetPhoto(context.Background(), userID, id); err != nil {
		return err
	}
	delete(m.photos, id)
	return nil
}

func (m *memGallery) OwnsPhotos(_ context.Context, userID int64, ids ...int64) (bool, error) {
	for _, id := range ids {
		p, ok := m.photos[id]
		if !ok || p.UserID != userID {
			return false, nil
		}
	}
	return true, nil
}

func (m *memGallery) CreateComparison(_ context.Context, c *domain.Comparison) (int64, error) {
	c.Recompute()
	c.ID = int64(len(m.comparisons) + 1)
	m.comparisons[c.ID] = *c
	return c.ID, nil
}

func (m *memGallery) GetComparison(_ context.Context, userID, id int64) (*domain.Comparison, error) {
	c, ok := m.comparisons[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memGallery) ListComparisons(_ context.Context, userID int64) ([]domain.Comparison, error) {
	var out []domain.Comparison
	for _, c := range m.comparisons {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memGallery) UpdateComparison(_ context.Context, c *domain.Comparison) error {
	c.Recompute()
	m.comparisons[c.ID] = *c
	return nil
}

func (m *memGallery) DeleteComparison(_ context.Context, userID, id int64) error {
	if _, err := m.GetComparison(context.Background(), userID, id); err != nil {
		return err
	}
	delete(m.comparisons, id)
	return nil
}

func TestCreatePhotoDefaults(t *testing.T) {
	h := NewGalleryHandler(testBase(), newMemGallery())

	rec := serve(t, http.MethodPost, "/gallery", "/gallery", h.CreatePhoto, 5,
		map[string]any{"url": "https://cdn.example.com/p/1.jpg"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Photo
	decodeBody(t, rec, &got)
	assert.Equal(t, "progress", got.Category)
	assert.True(t, got.IsPrivate)
	assert.Equal(t, []string{}, got.Tags)
	assert.True(t, got.TakenAt.Equal(fixedNow))
}

func TestCreatePhotoRequiresURL(t *testing.T) {
	h := NewGalleryHandler(testBase(), newMemGallery())

	rec := serve(t, http.MethodPost, "/gallery", "/gallery", h.CreatePhoto, 5,
		map[string]any{"url": "not a url", "category": "front"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPhotosByCategory(t *testing.T) {
	store := newMemGallery()
	store.photos[1] = domain.Photo{ID: 1, UserID: 5, Category: "front"}
	store.photos[2] = domain.Photo{ID: 2, UserID: 5, Category: "side"}
	store.photos[3] = domain.Photo{ID: 3, UserID: 6, Category: "front"}
	h := NewGalleryHandler(testBase(), store)

	rec := serve(t, http.MethodGet, "/gallery", "/gallery?category=front", h.ListPhotos, 5, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Photo
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestCreateComparisonDerivesDeltas(t *testing.T) {
	store := newMemGallery()
	store.photos[1] = domain.Photo{ID: 1, UserID: 5}
	store.photos[2] = domain.Photo{ID: 2, UserID: 5}
	h := NewGalleryHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/gallery/comparisons", "/gallery/comparisons", h.CreateComparison, 5,
		map[string]any{
			"title":         "12 weeks",
			"beforePhotoId": 1,
			"afterPhotoId":  2,
			"measurements": []map[string]any{
				{"type": "weight", "beforeValue": 90, "afterValue": 81, "unit": "kg"},
				{"type": "biceps", "beforeValue": 0, "afterValue": 36, "unit": "cm"},
			},
		})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Comparison
	decodeBody(t, rec, &got)
	require.Len(t, got.Measurements, 2)
	assert.Equal(t, -9.0, got.Measurements[0].Difference)
	assert.InDelta(t, -10, got.Measurements[0].PercentageChange, 1e-9)
	assert.Equal(t, 36.0, got.Measurements[1].Difference)
	assert.Equal(t, 0.0, got.Measurements[1].PercentageChange)
}

func TestComparisonRejectsForeignPhoto(t *testing.T) {
	store := newMemGallery()
	store.photos[1] = domain.Photo{ID: 1, UserID: 5}
	store.photos[2] = domain.Photo{ID: 2, UserID: 6}
	h := NewGalleryHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/gallery/comparisons", "/gallery/comparisons", h.CreateComparison, 5,
		map[string]any{"title": "x", "beforePhotoId": 1, "afterPhotoId": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.comparisons)
}

func TestComparisonRejectsSamePhotoTwice(t *testing.T) {
	store := newMemGallery()
	store.photos[1] = domain.Photo{ID: 1, UserID: 5}
	h := NewGalleryHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/gallery/comparisons", "/gallery/comparisons", h.CreateComparison, 5,
		map[string]any{"title": "x", "beforePhotoId": 1, "afterPhotoId": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	assert.Contains(t, string(body.Details), "nefield")
}
