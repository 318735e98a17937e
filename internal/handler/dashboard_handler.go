package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type DashboardStore interface {
	Compute(ctx context.Context, userID int64) (*domain.DashboardStats, error)
	History(ctx context.Context, userID int64, days int) ([]domain.DashboardStats, error)
}

type DashboardHandler struct {
	Base
	store DashboardStore
}

func NewDashboardHandler(base Base, store DashboardStore) *DashboardHandler {
	return &DashboardHandler{Base: base, store: store}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	stats, err := h.store.Compute(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	days, err := queryInt(r, "days", 7)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	history, err := h.store.History(r.Context(), userID, days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
