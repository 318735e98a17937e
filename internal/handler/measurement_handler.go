package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type MeasurementStore interface {
	Create(ctx context.Context, m *domain.Measurement) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Measurement, error)
	Latest(ctx context.Context, userID int64) (*domain.Measurement, error)
	List(ctx context.Context, userID int64, f domain.MeasurementFilter) ([]domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) error
	Delete(ctx context.Context, userID, id int64) error
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.HealthProfile, error)
	Save(ctx context.Context, p *domain.HealthProfile) error
}

type MeasurementHandler struct {
	Base
	store    MeasurementStore
	profiles ProfileStore
}

func NewMeasurementHandler(base Base, store MeasurementStore, profiles ProfileStore) *MeasurementHandler {
	return &MeasurementHandler{Base: base, store: store, profiles: profiles}
}

func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	from, err := queryTime(r, "from")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, err := h.store.List(r.Context(), userID, domain.MeasurementFilter{From: from, To: to})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Measurement{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.MeasurementRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.store.Create(r.Context(), req.ToMeasurement(userID, h.Now()))
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

func (h *MeasurementHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	m, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MeasurementHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.store.Latest(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MeasurementHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req domain.MeasurementRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Apply(m)
	if err := h.store.Update(r.Context(), m); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *MeasurementHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if p == nil {
		h.fail(w, r, domain.NewNotFound("health profile not found"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutProfile merges the request into the stored profile; the store
// recomputes BMI and BMR on save.
func (h *MeasurementHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.HealthProfileRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if p == nil {
		p = &domain.HealthProfile{UserID: userID}
	}
	req.Apply(p)
	if err := h.profiles.Save(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
