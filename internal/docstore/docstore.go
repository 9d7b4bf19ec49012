// Package docstore persists the tenant-scoped document collections that back
// the admin app: hotels/{hotelUid}/catalogproducts, supplierproducts,
// suppliers, shoppingCarts, roles, and the global users collection.
// Documents are schemaless JSON bodies addressed by (hotelUid, collection, id);
// a Merge write only overwrites the fields present in the payload.
package docstore

import (
	"context"
	"errors"
)

// Collection names used across the services.
const (
	CollectionCatalogProducts  = "catalogproducts"
	CollectionSupplierProducts = "supplierproducts"
	CollectionSuppliers        = "suppliers"
	CollectionShoppingCarts    = "shoppingCarts"
	CollectionRoles            = "roles"
	CollectionUsers            = "users" // global: stored with an empty hotelUid
)

// GlobalScope addresses collections that are not namespaced under a hotel.
const GlobalScope = ""

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// Document is one stored document with its key.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the data access contract for document collections.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via the in-memory store.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, hotelUID, collection, docID string) (*Document, error)

	// GetMany returns the subset of ids that exist, keyed by id.
	GetMany(ctx context.Context, hotelUID, collection string, ids []string) (map[string]Document, error)

	// List returns every document in the collection, ordered by id.
	List(ctx context.Context, hotelUID, collection string) ([]Document, error)

	// ListIDs returns every document id in the collection.
	ListIDs(ctx context.Context, hotelUID, collection string) ([]string, error)

	// QueryPrefix returns documents whose string field starts with prefix,
	// ordered by that field then id. Used by the search fallback path.
	QueryPrefix(ctx context.Context, hotelUID, collection, field, prefix string, limit, offset int) ([]Document, error)

	// Set writes the full document body, replacing any existing one.
	Set(ctx context.Context, hotelUID, collection, docID string, data map[string]any) error

	// Merge overwrites only the fields present in data, leaving the rest of an
	// existing document intact. Creates the document when absent.
	Merge(ctx context.Context, hotelUID, collection, docID string, data map[string]any) error

	// Add stores data under a freshly generated id and returns it.
	Add(ctx context.Context, hotelUID, collection string, data map[string]any) (string, error)

	// Delete removes the document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, hotelUID, collection, docID string) error

	// Exists reports whether the document is present.
	Exists(ctx context.Context, hotelUID, collection, docID string) (bool, error)
}
