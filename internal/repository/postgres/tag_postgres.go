package postgres

import (
	"context"
	"database/sql"

	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// TagPostgres is a PostgreSQL implementation of repository.TagRepository.
type TagPostgres struct {
	db *sql.DB
}

// NewTagPostgres creates a new TagPostgres repository.
func NewTagPostgres(db *sql.DB) *TagPostgres {
	return &TagPostgres{db: db}
}

var _ repository.TagRepository = (*TagPostgres)(nil)

// FindOrCreate resolves a name to its tag row in a single statement.
// The no-op DO UPDATE makes the conflicting row visible to RETURNING, so
// concurrent callers racing on a new name all get the same identity and the
// unique constraint on name is never violated.
func (r *TagPostgres) FindOrCreate(ctx context.Context, name string) (*model.Tag, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`
	var t model.Tag
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns every tag ordered by name.
func (r *TagPostgres) List(ctx context.Context) ([]model.Tag, error) {
	const q = `SELECT id, name, created_at FROM tags ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a tag by ID. Join rows cascade via the schema, so the tag
// disappears from every document that referenced it.
func (r *TagPostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM tags WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByDocument returns the tag set of one document ordered by name.
func (r *TagPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Tag, error) {
	const q = `
		SELECT t.id, t.name, t.created_at
		FROM document_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.document_id = $1
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Attach adds a join row; attaching an existing pair is a no-op.
func (r *TagPostgres) Attach(ctx context.Context, documentID, tagID string) error {
	const q = `
		INSERT INTO document_tags (document_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (document_id, tag_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, documentID, tagID)
	return err
}

// Detach removes a join row; detaching an absent pair is a no-op.
func (r *TagPostgres) Detach(ctx context.Context, documentID, tagID string) error {
	const q = `DELETE FROM document_tags WHERE document_id = $1 AND tag_id = $2`
	_, err := r.db.ExecContext(ctx, q, documentID, tagID)
	return err
}
