package taxonomy

import (
	"context"
	"testing"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCategoryRepository is a mock implementation of taxonomy.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*taxonomy.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]taxonomy.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRootCategories(ctx context.Context) ([]taxonomy.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *taxonomy.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasPosts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTagRepository is a mock implementation of taxonomy.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, slug string) (*taxonomy.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]taxonomy.Tag, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).([]taxonomy.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Tag, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]taxonomy.Tag), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *taxonomy.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(categoryRepo *MockCategoryRepository, tagRepo *MockTagRepository) *Service {
	return NewService(categoryRepo, tagRepo, zap.NewNop())
}

func TestService_ResolveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing category unchanged", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		existing, err := taxonomy.NewCategory("World News", "")
		require.NoError(t, err)
		otherParent := uuid.New()

		categoryRepo.On("FindBySlug", ctx, "world-news").Return(existing, nil)

		// Passing a different parent must not reparent the existing category
		resolved, err := service.ResolveCategory(ctx, "World News", "", &otherParent)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resolved.ID)
		assert.Nil(t, resolved.ParentID)

		categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates category when absent", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		categoryRepo.On("FindBySlug", ctx, "science").Return(nil, shared.ErrNotFound)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Category")).Return(nil)

		resolved, err := service.ResolveCategory(ctx, "Science", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "science", resolved.Slug)
		assert.Equal(t, "Science", resolved.Name)

		categoryRepo.AssertExpectations(t)
	})

	t.Run("creates child category under parent", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		parent, err := taxonomy.NewCategory("Science", "")
		require.NoError(t, err)

		categoryRepo.On("FindBySlug", ctx, "physics").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindByID", ctx, parent.ID).Return(parent, nil)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Category")).Return(nil)

		resolved, err := service.ResolveCategory(ctx, "Physics", "", &parent.ID)
		require.NoError(t, err)
		require.NotNil(t, resolved.ParentID)
		assert.Equal(t, parent.ID, *resolved.ParentID)
	})

	t.Run("missing parent is invalid", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		parentID := uuid.New()
		categoryRepo.On("FindBySlug", ctx, "physics").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindByID", ctx, parentID).Return(nil, shared.ErrNotFound)

		_, err := service.ResolveCategory(ctx, "Physics", "", &parentID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})

	t.Run("lost create race re-reads the winner", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		winner, err := taxonomy.NewCategory("Science", "")
		require.NoError(t, err)

		categoryRepo.On("FindBySlug", ctx, "science").Return(nil, shared.ErrNotFound).Once()
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Category")).Return(shared.ErrAlreadyExists)
		categoryRepo.On("FindBySlug", ctx, "science").Return(winner, nil).Once()

		resolved, err := service.ResolveCategory(ctx, "Science", "", nil)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, resolved.ID)
	})
}

func TestService_ResolveTag(t *testing.T) {
	ctx := context.Background()

	t.Run("same name resolves to same slug", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		existing, err := taxonomy.NewTag("Climate Change", "")
		require.NoError(t, err)

		tagRepo.On("FindBySlug", ctx, "climate-change").Return(nil, shared.ErrNotFound).Once()
		tagRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Tag")).Return(nil).Once()

		first, err := service.ResolveTag(ctx, "Climate Change", "")
		require.NoError(t, err)
		assert.Equal(t, "climate-change", first.Slug)

		tagRepo.On("FindBySlug", ctx, "climate-change").Return(existing, nil).Once()

		second, err := service.ResolveTag(ctx, "Climate  Change!", "climate-change")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, second.ID)
	})
}

func TestService_ResolveTags(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves order and dedupes to first occurrence", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		tagRepo.On("FindBySlug", ctx, mock.AnythingOfType("string")).Return(nil, shared.ErrNotFound)
		tagRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Tag")).Return(nil)

		// "Go!" and "go" collapse to the same slug
		tags, err := service.ResolveTags(ctx, []string{"Go!", "Databases", "go", "Testing"})
		require.NoError(t, err)

		require.Len(t, tags, 3)
		assert.Equal(t, "go", tags[0].Slug)
		assert.Equal(t, "databases", tags[1].Slug)
		assert.Equal(t, "testing", tags[2].Slug)
		// The first spelling wins the display name
		assert.Equal(t, "Go!", tags[0].Name)
	})

	t.Run("empty slug is rejected", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		_, err := service.ResolveTags(ctx, []string{"!!!"})
		require.Error(t, err)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		tags, err := service.ResolveTags(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestService_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses when children exist", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		id := uuid.New()
		categoryRepo.On("HasChildren", ctx, id).Return(true, nil)

		err := service.DeleteCategory(ctx, id)
		assert.ErrorIs(t, err, shared.ErrHasDependents)
	})

	t.Run("refuses when posts reference it", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		id := uuid.New()
		categoryRepo.On("HasChildren", ctx, id).Return(false, nil)
		categoryRepo.On("HasPosts", ctx, id).Return(true, nil)

		err := service.DeleteCategory(ctx, id)
		assert.ErrorIs(t, err, shared.ErrHasDependents)
	})

	t.Run("deletes an unused category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		tagRepo := new(MockTagRepository)
		service := newTestService(categoryRepo, tagRepo)

		id := uuid.New()
		categoryRepo.On("HasChildren", ctx, id).Return(false, nil)
		categoryRepo.On("HasPosts", ctx, id).Return(false, nil)
		categoryRepo.On("Delete", ctx, id).Return(nil)

		require.NoError(t, service.DeleteCategory(ctx, id))
		categoryRepo.AssertExpectations(t)
	})
}
