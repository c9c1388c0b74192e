// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/open2log/shopping-lists/internal/models"
)

// ErrNotFound is returned when a list does not exist or is not visible to the
// requesting user. Callers cannot distinguish the two cases; the access rule
// deliberately hides existence from non-owners of unshared lists.
var ErrNotFound = errors.New("list not found")

// Store defines the interface for shopping list storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the handler layer.
type Store interface {
	// CreateList persists a new list. ID and timestamps are populated by the
	// store when unset.
	CreateList(ctx context.Context, list *models.ShoppingList) error

	// ListLists returns every list the user can read (owned or shared),
	// most recently updated first.
	ListLists(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// GetList retrieves a single list visible to the user.
	// Returns ErrNotFound when the list is absent or not readable by userID.
	GetList(ctx context.Context, listID, userID string) (*models.ShoppingList, error)

	// ListItems returns all items of a list, unchecked before checked, each
	// group ordered by name.
	ListItems(ctx context.Context, listID string) ([]models.ShoppingListItem, error)

	// AddItem inserts an item and bumps the parent list's UpdatedAt in the
	// same transaction. The item ID is populated by the store when unset.
	// Access checks are the caller's responsibility.
	AddItem(ctx context.Context, item *models.ShoppingListItem) error

	// DeleteList removes a list if and only if ownerID owns it. Deleting a
	// missing or non-owned list is a silent no-op.
	DeleteList(ctx context.Context, listID, ownerID string) error

	// Close releases any resources held by the store.
	Close() error
}
