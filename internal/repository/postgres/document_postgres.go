package postgres

import (
	"context"
	"database/sql"

	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// The owner_id predicate is written out in every query rather than relying on
// any query-builder convention.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, display_name, stored_name, storage_path, size, content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, owner_id, display_name, stored_name, storage_path, size, content_type, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.DisplayName,
		doc.StoredName,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.CreatedAt,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document scoped by owner. A document owned by a
// different user yields sql.ErrNoRows, indistinguishable from absence.
func (r *DocumentPostgres) FindByID(ctx context.Context, ownerID, id string) (*model.Document, error) {
	const q = `
		SELECT id, owner_id, display_name, stored_name, storage_path, size, content_type, created_at, updated_at
		FROM documents
		WHERE owner_id = $1 AND id = $2
	`
	row := r.db.QueryRowContext(ctx, q, ownerID, id)
	var d model.Document
	if err := scanDocument(row, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByOwner returns the owner's documents, newest first, with tags attached.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	const qDocs = `
		SELECT id, owner_id, display_name, stored_name, storage_path, size, content_type, created_at, updated_at
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, qDocs, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	index := make(map[string]int)
	for rows.Next() {
		var d model.Document
		if err := scanDocument(rows, &d); err != nil {
			return nil, err
		}
		d.Tags = make([]model.Tag, 0)
		index[d.ID] = len(items)
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	// Second pass: one query for the tag sets of every listed document.
	const qTags = `
		SELECT dt.document_id, t.id, t.name, t.created_at
		FROM document_tags dt
		JOIN tags t ON t.id = dt.tag_id
		JOIN documents d ON d.id = dt.document_id
		WHERE d.owner_id = $1
		ORDER BY t.name
	`
	tagRows, err := r.db.QueryContext(ctx, qTags, ownerID)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var docID string
		var t model.Tag
		if err := tagRows.Scan(&docID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[docID]; ok {
			items[i].Tags = append(items[i].Tags, t)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateDisplayName renames the owner's document and bumps updated_at.
func (r *DocumentPostgres) UpdateDisplayName(ctx context.Context, ownerID, id, displayName string) error {
	const q = `
		UPDATE documents
		SET display_name = $3, updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, q, ownerID, id, displayName)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the owner's document by ID. It does not return an error if
// the row does not exist; join rows cascade via the schema.
func (r *DocumentPostgres) Delete(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM documents WHERE owner_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, ownerID, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner, d *model.Document) error {
	return s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.DisplayName,
		&d.StoredName,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}
