package service

import (
	"context"
	"fmt"

	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// TagService is CRUD over the global tag vocabulary, independent of any
// document.
type TagService interface {
	// List returns every tag in the system.
	List(ctx context.Context) ([]model.Tag, error)

	// Create resolves-or-creates a tag by name. Creation goes through the
	// same atomic upsert as document-side tag resolution, so the global
	// name-uniqueness invariant holds on this path too.
	Create(ctx context.Context, name string) (*model.Tag, error)

	// Delete removes a tag and detaches it from every document that
	// referenced it. Returns ErrNotFound if the tag does not exist.
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	tags repository.TagRepository
}

// NewTagService constructs a new TagService.
func NewTagService(tags repository.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	if ve := validateTagName(name); len(ve) > 0 {
		return nil, ve
	}
	tag, err := s.tags.FindOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	found, err := s.tags.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
