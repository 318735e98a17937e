package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

func newShoppingFixture() (*ShoppingHandler, *memShopping) {
	price := 2.5
	store := &memShopping{rows: map[int64]domain.ShoppingList{
		1: {ID: 1, UserID: 9, Name: "Week", Items: []domain.ShoppingItem{
			{Name: "Oats", Quantity: 2, Price: &price, Category: "carbs"},
		}},
	}}
	return NewShoppingHandler(testBase(), store), store
}

func TestShoppingToggleItem(t *testing.T) {
	h, store := newShoppingFixture()

	rec := serve(t, http.MethodPatch, "/shopping/{id}/items/{index}/toggle", "/shopping/1/items/0/toggle", h.ToggleItem, 9, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.ShoppingList
	decodeBody(t, rec, &got)
	assert.True(t, got.Items[0].Purchased)
	assert.Equal(t, 1, got.PurchasedItems)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, 5.0, got.EstimatedTotal)
	assert.True(t, store.rows[1].Items[0].Purchased)
}

func TestShoppingToggleOutOfRange(t *testing.T) {
	h, store := newShoppingFixture()

	rec := serve(t, http.MethodPatch, "/shopping/{id}/items/{index}/toggle", "/shopping/1/items/3/toggle", h.ToggleItem, 9, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, store.rows[1].Items[0].Purchased)
}

func TestShoppingAddAndRemoveItem(t *testing.T) {
	h, _ := newShoppingFixture()

	rec := serve(t, http.MethodPost, "/shopping/{id}/items", "/shopping/1/items", h.AddItem, 9,
		map[string]any{"name": "Eggs", "quantity": 12})
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.ShoppingList
	decodeBody(t, rec, &got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "other", got.Items[1].Category)
	assert.Equal(t, 2, got.TotalItems)

	rec = serve(t, http.MethodDelete, "/shopping/{id}/items/{index}", "/shopping/1/items/0", h.RemoveItem, 9, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Eggs", got.Items[0].Name)
	assert.Equal(t, 0.0, got.EstimatedTotal)
}
