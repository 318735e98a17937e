package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type TimerStore interface {
	Create(ctx context.Context, t *domain.WorkoutTimer) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.WorkoutTimer, error)
	List(ctx context.Context, userID int64) ([]domain.WorkoutTimer, error)
	Update(ctx context.Context, t *domain.WorkoutTimer) error
	Delete(ctx context.Context, userID, id int64) error
}

type TimerHandler struct {
	Base
	store TimerStore
}

func NewTimerHandler(base Base, store TimerStore) *TimerHandler {
	return &TimerHandler{Base: base, store: store}
}

func (h *TimerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	timers, err := h.store.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if timers == nil {
		timers = []domain.WorkoutTimer{}
	}
	writeJSON(w, http.StatusOK, timers)
}

func (h *TimerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.TimerRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.store.Create(r.Context(), req.ToTimer(userID))
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

func (h *TimerHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	t, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TimerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// mutate loads the timer, applies fn and saves it; the store rolls up the
// durations on save.
func (h *TimerHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(t *domain.WorkoutTimer, now time.Time) error) {
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

	t, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := fn(t, h.Now()); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Update(r.Context(), t); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*domain.WorkoutTimer).Start)
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*domain.WorkoutTimer).Pause)
}

func (h *TimerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*domain.WorkoutTimer).Resume)
}

func (h *TimerHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*domain.WorkoutTimer).Finish)
}

func (h *TimerHandler) UpdateExercises(w http.ResponseWriter, r *http.Request) {
	var req domain.TimerExercisesRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.mutate(w, r, func(t *domain.WorkoutTimer, _ time.Time) error {
		t.Exercises = req.Exercises
		if t.Exercises == nil {
			t.Exercises = []domain.TimerExercise{}
		}
		return nil
	})
}
