package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type ReminderStore interface {
	Create(ctx context.Context, rem *domain.Reminder) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Reminder, error)
	List(ctx context.Context, userID int64) ([]domain.Reminder, error)
	Update(ctx context.Context, rem *domain.Reminder) error
	Toggle(ctx context.Context, userID, id int64) (*domain.Reminder, error)
	Delete(ctx context.Context, userID, id int64) error
}

type ReminderHandler struct {
	Base
	store ReminderStore
	goals GoalStore
}

func NewReminderHandler(base Base, store ReminderStore, goals GoalStore) *ReminderHandler {
	return &ReminderHandler{Base: base, store: store, goals: goals}
}

// checkGoal makes sure a linked goal belongs to the same user.
func (h *ReminderHandler) checkGoal(ctx context.Context, userID int64, goalID *int64) error {
	if goalID == nil {
		return nil
	}
	if _, err := h.goals.GetByID(ctx, userID, *goalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound("goal not found")
		}
		return err
	}
	return nil
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	reminders, err := h.store.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ReminderRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkGoal(r.Context(), userID, req.GoalID); err != nil {
		h.fail(w, r, err)
		return
	}

	rem := &domain.Reminder{UserID: userID}
	req.Apply(rem)
	id, err := h.store.Create(r.Context(), rem)
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

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req domain.ReminderRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkGoal(r.Context(), userID, req.GoalID); err != nil {
		h.fail(w, r, err)
		return
	}

	rem, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(rem)
	if err := h.store.Update(r.Context(), rem); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	rem, err := h.store.Toggle(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
