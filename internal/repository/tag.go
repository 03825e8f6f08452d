package repository

import (
	"context"

	"docshelf/internal/model"
)

// TagRepository defines data access for the global tag vocabulary and the
// document-tag association.
type TagRepository interface {
	// FindOrCreate resolves a tag name to its identity, inserting the row if
	// absent. The lookup-or-insert is a single atomic statement so that at
	// most one row ever exists per distinct name, even under concurrent calls.
	FindOrCreate(ctx context.Context, name string) (*model.Tag, error)

	// List returns every tag in the system.
	List(ctx context.Context) ([]model.Tag, error)

	// Delete removes a tag by ID, cascading its join rows at the schema
	// level. Returns false if no such tag existed.
	Delete(ctx context.Context, id string) (bool, error)

	// ListByDocument returns the tag set of a document.
	ListByDocument(ctx context.Context, documentID string) ([]model.Tag, error)

	// Attach adds a tag to a document's set. Attaching an already-present
	// tag is a no-op.
	Attach(ctx context.Context, documentID, tagID string) error

	// Detach removes a tag from a document's set. Detaching an absent
	// association is a no-op.
	Detach(ctx context.Context, documentID, tagID string) error
}
