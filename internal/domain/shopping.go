package domain

import (
	"math"
	"time"
)

type ShoppingItem struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Quantity  float64  `json:"quantity" validate:"gte=0"`
	Unit      string   `json:"unit,omitempty" validate:"max=20"`
	Category  string   `json:"category" validate:"omitempty,oneof=protein carbs vegetables fruits dairy supplements snacks beverages other"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Purchased bool     `json:"purchased"`
	Notes     string   `json:"notes,omitempty" validate:"max=200"`
}

type ShoppingList struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"userId"`
	Name           string         `json:"name"`
	Items          []ShoppingItem `json:"items"`
	TotalItems     int            `json:"totalItems"`
	PurchasedItems int            `json:"purchasedItems"`
	EstimatedTotal float64        `json:"estimatedTotal"`
	IsCompleted    bool           `json:"isCompleted"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type ShoppingListRequest struct {
	Name  string         `json:"name" validate:"required,max=100"`
	Items []ShoppingItem `json:"items" validate:"max=200,dive"`
}

func (r ShoppingListRequest) Apply(l *ShoppingList) {
	l.Name = r.Name
	l.Items = r.Items
	if l.Items == nil {
		l.Items = []ShoppingItem{}
	}
}

// Recompute refreshes the item counters and the priced total. A list with
// at least one item is completed once every item is purchased.
func (l *ShoppingList) Recompute() {
	l.TotalItems = len(l.Items)
	l.PurchasedItems = 0
	var total float64
	for i := range l.Items {
		it := &l.Items[i]
		if it.Category == "" {
			it.Category = "other"
		}
		if it.Purchased {
			l.PurchasedItems++
		}
		if it.Price != nil {
			qty := it.Quantity
			if qty == 0 {
				qty = 1
			}
			total += *it.Price * qty
		}
	}
	l.EstimatedTotal = math.Round(total*100) / 100
	l.IsCompleted = l.TotalItems > 0 && l.PurchasedItems == l.TotalItems
}

// ToggleItem flips the purchased flag of the item at index.
func (l *ShoppingList) ToggleItem(index int) error {
	if index < 0 || index >= len(l.Items) {
		return NewNotFound("item not found")
	}
	l.Items[index].Purchased = !l.Items[index].Purchased
	return nil
}

func (l *ShoppingList) RemoveItem(index int) error {
	if index < 0 || index >= len(l.Items) {
		return NewNotFound("item not found")
	}
	l.Items = append(l.Items[:index], l.Items[index+1:]...)
	return nil
}
