package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/open2log/shopping-lists/internal/models"
)

// ListItems retrieves all items of a list, unchecked before checked, each
// group ordered by name.
func (s *SQLiteStore) ListItems(ctx context.Context, listID string) ([]models.ShoppingListItem, error) {
	query := `
		SELECT id, list_id, product_id, name, quantity, checked
		FROM shopping_list_items
		WHERE list_id = ?
		ORDER BY checked, name
	`

	rows, err := s.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.ShoppingListItem{}
	for rows.Next() {
		var item models.ShoppingListItem
		if err := rows.Scan(
			&item.ID,
			&item.ListID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.Checked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// AddItem inserts a new item and bumps the parent list's updated_at.
// Both writes run in one transaction so a list can never point at an item
// add it has not recorded.
func (s *SQLiteStore) AddItem(ctx context.Context, item *models.ShoppingListItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO shopping_list_items (id, list_id, product_id, name, quantity, checked)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		item.ID,
		item.ListID,
		item.ProductID,
		item.Name,
		item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE shopping_lists SET updated_at = ? WHERE id = ?",
		epochNow(), item.ListID,
	)
	if err != nil {
		return fmt.Errorf("failed to update list timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	item.Checked = false
	return nil
}
