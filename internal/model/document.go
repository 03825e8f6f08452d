package model

import (
	"path/filepath"
	"time"
)

// Document represents a stored file owned by a single user.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	StoredName  string    `json:"stored_name"`
	StoragePath string    `json:"-"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DownloadName is the filename suggested to clients on download:
// the user-chosen display name recombined with the original upload's extension.
func (d *Document) DownloadName() string {
	return d.DisplayName + filepath.Ext(d.StoredName)
}
