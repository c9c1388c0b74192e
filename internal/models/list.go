package models

// ShoppingList represents a user-owned list of items to buy.
// When Shared is true any authenticated user may read the list and append
// items, but only the owner may delete it.
type ShoppingList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who created the list. Immutable after creation.
	OwnerID string `json:"owner_id"`

	// Name is the display name of the list (e.g., "Weekly groceries").
	Name string `json:"name"`

	// Description is an optional free-form note. Empty string when unset.
	Description string `json:"description"`

	// Shared grants read and append access to every authenticated user.
	Shared bool `json:"shared"`

	// CreatedAt and UpdatedAt are Unix seconds rendered as decimal strings,
	// matching the wire format clients already parse. UpdatedAt is bumped
	// whenever an item is added.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ShoppingListItem represents a single entry on a shopping list.
type ShoppingListItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// ListID is the list this item belongs to.
	ListID string `json:"list_id"`

	// ProductID optionally references an external product catalog entry.
	// No referential integrity is enforced; empty string when unset.
	ProductID string `json:"product_id"`

	// Name is the display name of the item (e.g., "Oat milk").
	Name string `json:"name"`

	// Quantity defaults to 1 when the client omits it. Negative values are
	// not rejected; the catalog UI treats them as display text.
	Quantity int `json:"quantity"`

	// Checked marks the item as bought. Always false at creation.
	Checked bool `json:"checked"`
}
