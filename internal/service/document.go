package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docshelf/internal/model"
	"docshelf/internal/repository"
	"docshelf/internal/storage"
)

// MaxUploadSize is the upper bound for a single uploaded file.
const MaxUploadSize = 10 << 20 // 10 MiB

// MaxNameLength bounds display names and tag names.
const MaxNameLength = 255

// UploadInput carries everything needed to create a document.
type UploadInput struct {
	OwnerID          string
	DisplayName      string
	Reader           io.Reader
	OriginalFilename string
	ContentType      string
	Size             int64
	TagNames         []string
}

// DocumentService defines the use cases for handling documents.
// Every operation is scoped by the owner's identity: a document belonging to
// another user is reported as ErrNotFound, never as a permission failure.
type DocumentService interface {
	// List returns all documents owned by ownerID with their tag sets.
	List(ctx context.Context, ownerID string) ([]model.Document, error)

	// Upload validates input, writes the blob to object storage, creates the
	// document record (rolling back the blob if the record write fails), then
	// resolves and attaches the submitted tag names.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Get returns a single owned document with its tags.
	Get(ctx context.Context, ownerID, id string) (*model.Document, error)

	// Download returns the blob content of an owned document alongside the
	// document itself (for the suggested filename and content type).
	Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *model.Document, error)

	// Update renames an owned document and attaches the given tag names.
	// Tags already on the document but absent from tagNames stay attached.
	Update(ctx context.Context, ownerID, id, displayName string, tagNames []string) (*model.Document, error)

	// Delete removes the blob from storage first, then the record. If the
	// blob delete fails the record is kept so the operation can be retried.
	Delete(ctx context.Context, ownerID, id string) error

	// ListTags returns the tag set of an owned document.
	ListTags(ctx context.Context, ownerID, id string) ([]model.Tag, error)

	// AddTag resolves-or-creates the named tag and attaches it.
	// Attaching an already-present tag is a no-op.
	AddTag(ctx context.Context, ownerID, id, name string) (*model.Tag, error)

	// RemoveTag detaches the association if present; removing an absent
	// association is not an error.
	RemoveTag(ctx context.Context, ownerID, documentID, tagID string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	docs  repository.DocumentRepository
	tags  repository.TagRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, tags repository.TagRepository) DocumentService {
	return &documentService{store: store, docs: docs, tags: tags}
}

func (s *documentService) List(ctx context.Context, ownerID string) ([]model.Document, error) {
	if ownerID == "" {
		return nil, ErrIDRequired
	}
	return s.docs.ListByOwner(ctx, ownerID)
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.OwnerID == "" {
		return nil, ErrIDRequired
	}
	if ve := validateUpload(in); len(ve) > 0 {
		return nil, ve
	}

	// Blob key is UUID + original extension; the original filename survives
	// only as stored_name on the record.
	ext := filepath.Ext(in.OriginalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	// Blob before record: a failure here leaves nothing behind, a failure
	// after leaves at worst an orphaned blob, never a record with no blob.
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		OwnerID:     in.OwnerID,
		DisplayName: in.DisplayName,
		StoredName:  in.OriginalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: in.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.attachTags(ctx, stored.ID, in.TagNames); err != nil {
		return nil, err
	}

	stored.Tags, err = s.tags.ListByDocument(ctx, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, ownerID, id string) (*model.Document, error) {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	doc.Tags, err = s.tags.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) Update(ctx context.Context, ownerID, id, displayName string, tagNames []string) (*model.Document, error) {
	if ownerID == "" || id == "" {
		return nil, ErrIDRequired
	}
	if ve := validateDisplayName(displayName, ValidationErrors{}); len(ve) > 0 {
		return nil, ve
	}
	if ve := validateTagNames(tagNames, ValidationErrors{}); len(ve) > 0 {
		return nil, ve
	}

	if err := s.docs.UpdateDisplayName(ctx, ownerID, id, displayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.attachTags(ctx, id, tagNames); err != nil {
		return nil, err
	}

	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	doc.Tags, err = s.tags.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep the record so the blob
	// handle is not lost and the delete can be retried.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Record delete cascades the tag associations at the schema level.
	return s.docs.Delete(ctx, ownerID, id)
}

func (s *documentService) ListTags(ctx context.Context, ownerID, id string) ([]model.Tag, error) {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.tags.ListByDocument(ctx, doc.ID)
}

func (s *documentService) AddTag(ctx context.Context, ownerID, id, name string) (*model.Tag, error) {
	if ve := validateTagName(name); len(ve) > 0 {
		return nil, ve
	}
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	tag, err := s.tags.FindOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve tag: %w", err)
	}
	if err := s.tags.Attach(ctx, doc.ID, tag.ID); err != nil {
		return nil, fmt.Errorf("attach tag: %w", err)
	}
	return tag, nil
}

func (s *documentService) RemoveTag(ctx context.Context, ownerID, documentID, tagID string) error {
	doc, err := s.findOwned(ctx, ownerID, documentID)
	if err != nil {
		return err
	}
	return s.tags.Detach(ctx, doc.ID, tagID)
}

// findOwned is the single ownership gate: absent and not-owned documents are
// both reported as ErrNotFound.
func (s *documentService) findOwned(ctx context.Context, ownerID, id string) (*model.Document, error) {
	if ownerID == "" || id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// attachTags resolves each name and attaches the identity without touching
// associations absent from the input.
func (s *documentService) attachTags(ctx context.Context, documentID string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.FindOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("resolve tag %q: %w", name, err)
		}
		if err := s.tags.Attach(ctx, documentID, tag.ID); err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

func validateUpload(in UploadInput) ValidationErrors {
	ve := ValidationErrors{}
	validateDisplayName(in.DisplayName, ve)
	if in.Reader == nil {
		ve["file"] = "file is required"
	} else if in.Size > MaxUploadSize {
		ve["file"] = "file may not be larger than 10 MiB"
	}
	validateTagNames(in.TagNames, ve)
	return ve
}

func validateDisplayName(name string, ve ValidationErrors) ValidationErrors {
	if name == "" {
		ve["display_name"] = "display name is required"
	} else if len(name) > MaxNameLength {
		ve["display_name"] = "display name may not be longer than 255 characters"
	}
	return ve
}

func validateTagNames(names []string, ve ValidationErrors) ValidationErrors {
	for _, n := range names {
		if len(n) > MaxNameLength {
			ve["tags"] = "tag names may not be longer than 255 characters"
			break
		}
	}
	return ve
}

func validateTagName(name string) ValidationErrors {
	ve := ValidationErrors{}
	if name == "" {
		ve["name"] = "name is required"
	} else if len(name) > MaxNameLength {
		ve["name"] = "name may not be longer than 255 characters"
	}
	return ve
}
