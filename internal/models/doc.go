// Package models defines the core domain models for the shopping-lists service.
//
// # Models
//
//   - ShoppingList: a named, optionally shared collection of items owned by one user
//   - ShoppingListItem: a single purchasable entry belonging to exactly one list
//
// Users are identified by opaque ID strings authenticated upstream; this
// service never resolves them against a user store.
//
// # Design Principles
//
//  1. **Flat records**: models mirror the persisted rows one-to-one
//  2. **Avoid circular references**: items carry a ListID string instead of a
//     pointer back to their list
//  3. **Opaque identity**: OwnerID is whatever the gateway authenticated; it is
//     recorded at creation and never changed
package models
