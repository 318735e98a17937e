package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type GoalStore interface {
	Create(ctx context.Context, g *domain.Goal) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Goal, error)
	List(ctx context.Context, userID int64, status string) ([]domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, userID, id int64) error
}

type GoalHandler struct {
	Base
	store GoalStore
}

func NewGoalHandler(base Base, store GoalStore) *GoalHandler {
	return &GoalHandler{Base: base, store: store}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := r.URL.Query().Get("status")
	if err := validate.Var(status, "omitempty,oneof=active completed paused abandoned"); err != nil {
		h.fail(w, r, domain.NewValidationError("invalid status", []FieldError{{Field: "status", Rule: "oneof", Param: "active completed paused abandoned"}}))
		return
	}

	goals, err := h.store.List(r.Context(), userID, status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.GoalRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	goal := &domain.Goal{UserID: userID}
	req.Apply(goal, h.Now())
	id, err := h.store.Create(r.Context(), goal)
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

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	goal, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req domain.GoalRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	goal, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(goal, h.Now())
	if err := h.store.Update(r.Context(), goal); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// UpdateProgress sets the current value; the store recomputes progress.
func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
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
	var req domain.ProgressRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	goal, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	goal.CurrentValue = *req.CurrentValue
	if err := h.store.Update(r.Context(), goal); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
