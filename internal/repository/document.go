package repository

import (
	"context"

	"docshelf/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
//
// Every lookup and mutation takes the owner's id and applies it as an explicit
// predicate; a document outside the owner's scope behaves exactly like a
// missing row (sql.ErrNoRows).
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides required fields (ID, OwnerID, timestamps).
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the owner's document by its ID.
	FindByID(ctx context.Context, ownerID, id string) (*model.Document, error)

	// ListByOwner returns all documents owned by ownerID, newest first,
	// with their tag sets populated.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// UpdateDisplayName replaces the display name of the owner's document.
	// Returns sql.ErrNoRows if the document is absent or not owned.
	UpdateDisplayName(ctx context.Context, ownerID, id, displayName string) error

	// Delete removes the owner's document by ID. Tag associations cascade at
	// the schema level. Returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, ownerID, id string) error
}
