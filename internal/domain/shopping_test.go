package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListRecompute(t *testing.T) {
	l := &ShoppingList{Items: []ShoppingItem{
		{Name: "oats", Quantity: 2, Price: ptr(1.25)},
		{Name: "whey", Quantity: 0, Price: ptr(30.0), Purchased: true},
		{Name: "spinach", Quantity: 1},
	}}
	l.Recompute()

	assert.Equal(t, 3, l.TotalItems)
	assert.Equal(t, 1, l.PurchasedItems)
	assert.Equal(t, 32.5, l.EstimatedTotal)
	assert.False(t, l.IsCompleted)
	assert.Equal(t, "other", l.Items[2].Category)
}

func TestShoppingListToggleAndRemove(t *testing.T) {
	l := &ShoppingList{Items: []ShoppingItem{{Name: "eggs"}, {Name: "rice"}}}

	require.NoError(t, l.ToggleItem(0))
	require.NoError(t, l.ToggleItem(1))
	l.Recompute()
	assert.True(t, l.IsCompleted)

	require.NoError(t, l.RemoveItem(0))
	assert.Len(t, l.Items, 1)
	assert.Equal(t, "rice", l.Items[0].Name)

	assert.Error(t, l.ToggleItem(5))
	assert.Error(t, l.RemoveItem(-1))
}

func TestShoppingListEmptyIsNotCompleted(t *testing.T) {
	l := &ShoppingList{}
	l.Recompute()
	assert.False(t, l.IsCompleted)
	assert.Zero(t, l.TotalItems)
}
