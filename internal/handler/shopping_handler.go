package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type ShoppingStore interface {
	Create(ctx context.Context, l *domain.ShoppingList) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.ShoppingList, error)
	List(ctx context.Context, userID int64) ([]domain.ShoppingList, error)
	Update(ctx context.Context, l *domain.ShoppingList) error
	Delete(ctx context.Context, userID, id int64) error
}

type ShoppingHandler struct {
	Base
	store ShoppingStore
}

func NewShoppingHandler(base Base, store ShoppingStore) *ShoppingHandler {
	return &ShoppingHandler{Base: base, store: store}
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	lists, err := h.store.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if lists == nil {
		lists = []domain.ShoppingList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ShoppingListRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	l := &domain.ShoppingList{UserID: userID}
	req.Apply(l)
	id, err := h.store.Create(r.Context(), l)
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

func (h *ShoppingHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	l, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ShoppingListRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.mutate(w, r, func(l *domain.ShoppingList) error {
		req.Apply(l)
		return nil
	})
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ShoppingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.ShoppingItem
	if err := decode(r, &item); err != nil {
		h.fail(w, r, err)
		return
	}
	h.mutate(w, r, func(l *domain.ShoppingList) error {
		l.Items = append(l.Items, item)
		return nil
	})
}

func (h *ShoppingHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.mutate(w, r, func(l *domain.ShoppingList) error {
		return l.ToggleItem(int(index))
	})
}

func (h *ShoppingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.mutate(w, r, func(l *domain.ShoppingList) error {
		return l.RemoveItem(int(index))
	})
}

// mutate loads the list, applies fn and saves it; the store recomputes the
// totals on save.
func (h *ShoppingHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(l *domain.ShoppingList) error) {
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

	l, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := fn(l); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Update(r.Context(), l); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
