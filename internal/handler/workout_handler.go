package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type WorkoutStore interface {
	Create(ctx context.Context, w *domain.Workout) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Workout, error)
	List(ctx context.Context, userID int64, f domain.WorkoutFilter) ([]domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, userID, id int64) error
	Stats(ctx context.Context, userID int64) (*domain.WorkoutStats, error)
}

type WorkoutHandler struct {
	Base
	store WorkoutStore
}

func NewWorkoutHandler(base Base, store WorkoutStore) *WorkoutHandler {
	return &WorkoutHandler{Base: base, store: store}
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	workouts, err := h.store.List(r.Context(), userID, domain.WorkoutFilter{
		Type:   r.URL.Query().Get("type"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.WorkoutRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	workout := &domain.Workout{UserID: userID}
	req.Apply(workout, h.Now())
	id, err := h.store.Create(r.Context(), workout)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	workout, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req domain.WorkoutRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	workout, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(workout, h.Now())
	if err := h.store.Update(r.Context(), workout); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.store.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	noContent(w)
}

func (h *WorkoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	stats, err := h.store.Stats(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
