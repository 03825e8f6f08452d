package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"docshelf/internal/model"
	repoMocks "docshelf/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
)

func TestTagService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("goes through the same upsert as document tagging", func(t *testing.T) {
		mTags := new(repoMocks.MockTagRepository)
		svc := NewTagService(mTags)

		mTags.On("FindOrCreate", ctx, "finance").Return(&model.Tag{ID: "tag-f", Name: "finance"}, nil)

		tag, err := svc.Create(ctx, "finance")

		assert.NoError(t, err)
		assert.Equal(t, "tag-f", tag.ID)
		mTags.AssertExpectations(t)
	})

	t.Run("existing name yields existing identity", func(t *testing.T) {
		mTags := new(repoMocks.MockTagRepository)
		svc := NewTagService(mTags)

		// Same row comes back regardless of how often the name is submitted.
		mTags.On("FindOrCreate", ctx, "finance").Return(&model.Tag{ID: "tag-f", Name: "finance"}, nil).Twice()

		first, err := svc.Create(ctx, "finance")
		assert.NoError(t, err)
		second, err := svc.Create(ctx, "finance")
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("validation - empty name", func(t *testing.T) {
		svc := NewTagService(new(repoMocks.MockTagRepository))

		_, err := svc.Create(ctx, "")

		ve, ok := AsValidationErrors(err)
		assert.True(t, ok)
		assert.Contains(t, ve, "name")
	})

	t.Run("validation - name too long", func(t *testing.T) {
		svc := NewTagService(new(repoMocks.MockTagRepository))

		_, err := svc.Create(ctx, strings.Repeat("a", MaxNameLength+1))

		ve, ok := AsValidationErrors(err)
		assert.True(t, ok)
		assert.Contains(t, ve, "name")
	})
}

func TestTagService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mTags := new(repoMocks.MockTagRepository)
		svc := NewTagService(mTags)

		mTags.On("Delete", ctx, "tag-f").Return(true, nil)

		assert.NoError(t, svc.Delete(ctx, "tag-f"))
	})

	t.Run("absent tag is not found", func(t *testing.T) {
		mTags := new(repoMocks.MockTagRepository)
		svc := NewTagService(mTags)

		mTags.On("Delete", ctx, "missing").Return(false, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		mTags := new(repoMocks.MockTagRepository)
		svc := NewTagService(mTags)

		mTags.On("Delete", ctx, "tag-f").Return(false, errors.New("db fail"))

		assert.Error(t, svc.Delete(ctx, "tag-f"))
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewTagService(new(repoMocks.MockTagRepository))

		assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	})
}

func TestTagService_List(t *testing.T) {
	ctx := context.Background()

	mTags := new(repoMocks.MockTagRepository)
	svc := NewTagService(mTags)

	mTags.On("List", ctx).Return([]model.Tag{
		{ID: "tag-y", Name: "2024"},
		{ID: "tag-f", Name: "finance"},
	}, nil)

	tags, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, tags, 2)
}
