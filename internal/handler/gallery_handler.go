package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type GalleryStore interface {
	CreatePhoto(ctx context.Context, p *domain.Photo) (int64, error)
	GetPhoto(ctx context.Context, userID, id int64) (*domain.Photo, error)
	ListPhotos(ctx context.Context, userID int64, category string) ([]domain.Photo, error)
	UpdatePhoto(ctx context.Context, p *domain.Photo) error
	DeletePhoto(ctx context.Context, userID, id int64) error
	OwnsPhotos(ctx context.Context, userID int64, ids ...int64) (bool, error)

	CreateComparison(ctx context.Context, c *domain.Comparison) (int64, error)
	GetComparison(ctx context.Context, userID, id int64) (*domain.Comparison, error)
	ListComparisons(ctx context.Context, userID int64) ([]domain.Comparison, error)
	UpdateComparison(ctx context.Context, c *domain.Comparison) error
	DeleteComparison(ctx context.Context, userID, id int64) error
}

type GalleryHandler struct {
	Base
	store GalleryStore
}

func NewGalleryHandler(base Base, store GalleryStore) *GalleryHandler {
	return &GalleryHandler{Base: base, store: store}
}

func (h *GalleryHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	photos, err := h.store.ListPhotos(r.Context(), userID, r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	writeJSON(w, http.StatusOK, photos)
}

func (h *GalleryHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.PhotoRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	photo := &domain.Photo{UserID: userID}
	req.Apply(photo, h.Now())
	id, err := h.store.CreatePhoto(r.Context(), photo)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.store.GetPhoto(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *GalleryHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	photo, err := h.store.GetPhoto(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *GalleryHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.PhotoRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	photo, err := h.store.GetPhoto(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(photo, h.Now())
	if err := h.store.UpdatePhoto(r.Context(), photo); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *GalleryHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.DeletePhoto(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	noContent(w)
}

func (h *GalleryHandler) checkPhotos(ctx context.Context, userID int64, req domain.ComparisonRequest) error {
	ok, err := h.store.OwnsPhotos(ctx, userID, req.BeforePhotoID, req.AfterPhotoID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("photo not found")
	}
	return nil
}

func (h *GalleryHandler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	comparisons, err := h.store.ListComparisons(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if comparisons == nil {
		comparisons = []domain.Comparison{}
	}
	writeJSON(w, http.StatusOK, comparisons)
}

// CreateComparison stores a before/after pair; the store derives the deltas.
func (h *GalleryHandler) CreateComparison(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ComparisonRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkPhotos(r.Context(), userID, req); err != nil {
		h.fail(w, r, err)
		return
	}

	c := &domain.Comparison{UserID: userID}
	req.Apply(c)
	id, err := h.store.CreateComparison(r.Context(), c)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.store.GetComparison(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *GalleryHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	c, err := h.store.GetComparison(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *GalleryHandler) UpdateComparison(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ComparisonRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkPhotos(r.Context(), userID, req); err != nil {
		h.fail(w, r, err)
		return
	}

	c, err := h.store.GetComparison(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(c)
	if err := h.store.UpdateComparison(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *GalleryHandler) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.DeleteComparison(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	noContent(w)
}
