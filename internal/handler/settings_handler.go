package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type SettingsStore interface {
	Get(ctx context.Context, userID int64) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
	Delete(ctx context.Context, userID int64) error
}

type SettingsHandler struct {
	Base
	store SettingsStore
}

func NewSettingsHandler(base Base, store SettingsStore) *SettingsHandler {
	return &SettingsHandler{Base: base, store: store}
}

// Get returns the stored settings, or the defaults when none were saved.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if s == nil {
		s = domain.DefaultSettings(userID)
	}
	writeJSON(w, http.StatusOK, s)
}

// Put merges the body over the current settings; omitted fields keep their
// current value.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if s == nil {
		s = domain.DefaultSettings(userID)
	}
	if err := decode(r, s); err != nil {
		h.fail(w, r, err)
		return
	}
	s.UserID = userID
	s.UpdatedAt = h.Now()

	if err := h.store.Upsert(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), userID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.DefaultSettings(userID))
}
