package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/open2log/shopping-lists/internal/models"
	"github.com/open2log/shopping-lists/internal/storage"
)

// epochNow returns the current Unix time as a decimal string, the timestamp
// format persisted in the lists table.
func epochNow() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// CreateList persists a new shopping list to the database.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.ShoppingList) error {
	// Generate ID and timestamps if not set
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt == "" {
		list.CreatedAt = epochNow()
	}
	if list.UpdatedAt == "" {
		list.UpdatedAt = list.CreatedAt
	}

	query := `
		INSERT INTO shopping_lists (id, owner_id, name, description, shared, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		list.ID,
		list.OwnerID,
		list.Name,
		list.Description,
		list.Shared,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

// ListLists retrieves every list the user owns plus all shared lists,
// most recently updated first.
func (s *SQLiteStore) ListLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	query := `
		SELECT id, owner_id, name, description, shared, created_at, updated_at
		FROM shopping_lists
		WHERE owner_id = ? OR shared = 1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []models.ShoppingList{}
	for rows.Next() {
		var list models.ShoppingList
		if err := rows.Scan(
			&list.ID,
			&list.OwnerID,
			&list.Name,
			&list.Description,
			&list.Shared,
			&list.CreatedAt,
			&list.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	return lists, nil
}

// GetList retrieves a single list the user can read.
// Returns storage.ErrNotFound when the list is absent or not visible, without
// distinguishing the two.
func (s *SQLiteStore) GetList(ctx context.Context, listID, userID string) (*models.ShoppingList, error) {
	query := `
		SELECT id, owner_id, name, description, shared, created_at, updated_at
		FROM shopping_lists
		WHERE id = ? AND (owner_id = ? OR shared = 1)
	`

	list := &models.ShoppingList{}
	err := s.db.QueryRowContext(ctx, query, listID, userID).Scan(
		&list.ID,
		&list.OwnerID,
		&list.Name,
		&list.Description,
		&list.Shared,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, listID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return list, nil
}

// DeleteList removes a list owned by ownerID. Items cascade via the foreign
// key. Zero rows affected is not an error; the handler deliberately does not
// confirm existence or ownership to the caller.
func (s *SQLiteStore) DeleteList(ctx context.Context, listID, ownerID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM shopping_lists WHERE id = ? AND owner_id = ?",
		listID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	return nil
}
