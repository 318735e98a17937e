package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type ShoppingRepository struct {
	db *sql.DB
}

func NewShoppingRepository(db *sql.DB) *ShoppingRepository {
	return &ShoppingRepository{db: db}
}

const shoppingColumns = `id, user_id, name, items, total_items, purchased_items, estimated_total, is_completed, created_at, updated_at`

func scanShoppingList(row scanner) (*domain.ShoppingList, error) {
	var l domain.ShoppingList
	var items []byte
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &items, &l.TotalItems, &l.PurchasedItems,
		&l.EstimatedTotal, &l.IsCompleted, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(items, &l.Items); err != nil {
		return nil, err
	}
	if l.Items == nil {
		l.Items = []domain.ShoppingItem{}
	}
	return &l, nil
}

// Create recomputes the list totals before inserting.
func (r *ShoppingRepository) Create(ctx context.Context, l *domain.ShoppingList) (int64, error) {
	l.Recompute()
	items, err := encodeJSON(l.Items)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (user_id, name, items, total_items, purchased_items, estimated_total, is_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.Name, items, l.TotalItems, l.PurchasedItems, l.EstimatedTotal, l.IsCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return result.LastInsertId()
}

func (r *ShoppingRepository) GetByID(ctx context.Context, userID, id int64) (*domain.ShoppingList, error) {
	l, err := scanShoppingList(r.db.QueryRowContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_lists WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return l, nil
}

func (r *ShoppingRepository) List(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer rows.Close()

	var out []domain.ShoppingList
	for rows.Next() {
		l, err := scanShoppingList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// Update recomputes the list totals before writing.
func (r *ShoppingRepository) Update(ctx context.Context, l *domain.ShoppingList) error {
	l.Recompute()
	items, err := encodeJSON(l.Items)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE shopping_lists SET name = ?, items = ?, total_items = ?, purchased_items = ?, estimated_total = ?,
		 is_completed = ? WHERE id = ? AND user_id = ?`,
		l.Name, items, l.TotalItems, l.PurchasedItems, l.EstimatedTotal, l.IsCompleted, l.ID, l.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shopping list: %w", err)
	}
	return requireAffected(result)
}

func (r *ShoppingRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return requireAffected(result)
}
