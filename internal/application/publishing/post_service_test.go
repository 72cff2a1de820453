package publishing

import (
	"context"
	"testing"
	"time"

	apptaxonomy "github.com/newsroom/backend/internal/application/taxonomy"
	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type postFixture struct {
	service      *PostService
	postRepo     *MockPostRepository
	categoryRepo *MockCategoryRepository
	tagRepo      *MockTagRepository
	viewLogRepo  *MockViewLogRepository
	viewDedup    *memoryIdempotencyStore
}

func newPostFixture() *postFixture {
	postRepo := new(MockPostRepository)
	categoryRepo := new(MockCategoryRepository)
	tagRepo := new(MockTagRepository)
	viewLogRepo := new(MockViewLogRepository)
	viewDedup := newMemoryIdempotencyStore()

	taxonomyService := apptaxonomy.NewService(categoryRepo, tagRepo, zap.NewNop())
	service := NewPostService(postRepo, categoryRepo, viewLogRepo, taxonomyService, viewDedup, time.Minute, zap.NewNop())

	return &postFixture{
		service:      service,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		viewLogRepo:  viewLogRepo,
		viewDedup:    viewDedup,
	}
}

func writerActor() *identity.Actor {
	return &identity.Actor{UserID: uuid.New(), Role: identity.RoleWriter}
}

func editorActor() *identity.Actor {
	return &identity.Actor{UserID: uuid.New(), Role: identity.RoleEditor}
}

func draftPost(t *testing.T, authorID uuid.UUID) *content.Post {
	t.Helper()
	post, err := content.NewPost(authorID, "A Draft Story", "", "body")
	require.NoError(t, err)
	post.ClearDomainEvents()
	return post
}

func publishedPost(t *testing.T, authorID uuid.UUID) *content.Post {
	t.Helper()
	post := draftPost(t, authorID)
	require.NoError(t, post.Publish())
	post.ClearDomainEvents()
	return post
}

func TestPostService_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with resolved tags", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()

		f.postRepo.On("ExistsBySlug", ctx, "breaking-story").Return(false, nil)
		f.tagRepo.On("FindBySlug", ctx, mock.AnythingOfType("string")).Return(nil, shared.ErrNotFound)
		f.tagRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Tag")).Return(nil)
		f.postRepo.On("Create", ctx, mock.AnythingOfType("*content.Post")).Return(nil)

		resp, err := f.service.CreateArticle(ctx, actor, CreateArticleRequest{
			Title:   "Breaking Story",
			Content: "body",
			Tags:    []string{"Politics", "Economy"},
		})
		require.NoError(t, err)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Equal(t, "breaking-story", resp.Slug)
		assert.Equal(t, actor.UserID, resp.AuthorID)
		assert.Len(t, resp.TagIDs, 2)
	})

	t.Run("anonymous cannot create", func(t *testing.T) {
		f := newPostFixture()

		_, err := f.service.CreateArticle(ctx, nil, CreateArticleRequest{Title: "X", Content: "y"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("readers cannot create", func(t *testing.T) {
		f := newPostFixture()

		actor := &identity.Actor{UserID: uuid.New(), Role: identity.RoleReader}
		_, err := f.service.CreateArticle(ctx, actor, CreateArticleRequest{Title: "X", Content: "y"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()

		f.postRepo.On("ExistsBySlug", ctx, "breaking-story").Return(true, nil)

		_, err := f.service.CreateArticle(ctx, actor, CreateArticleRequest{Title: "Breaking Story", Content: "body"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("scheduled_at moves the draft to SCHEDULED", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()

		f.postRepo.On("ExistsBySlug", ctx, mock.AnythingOfType("string")).Return(false, nil)
		f.postRepo.On("Create", ctx, mock.AnythingOfType("*content.Post")).Return(nil)

		at := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
		resp, err := f.service.CreateArticle(ctx, actor, CreateArticleRequest{
			Title:       "Scheduled Story",
			Content:     "body",
			ScheduledAt: at,
		})
		require.NoError(t, err)
		assert.Equal(t, "SCHEDULED", resp.Status)
		require.NotNil(t, resp.ScheduledAt)
	})

	t.Run("malformed scheduled_at is rejected", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()

		f.postRepo.On("ExistsBySlug", ctx, mock.AnythingOfType("string")).Return(false, nil)

		_, err := f.service.CreateArticle(ctx, actor, CreateArticleRequest{
			Title:       "Scheduled Story",
			Content:     "body",
			ScheduledAt: "tomorrow",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SCHEDULE", domainErr.Code)
	})
}

func TestPostService_GetArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous reads published public articles", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())

		f.postRepo.On("FindBySlug", ctx, post.Slug).Return(post, nil)

		resp, err := f.service.GetArticle(ctx, nil, post.Slug)
		require.NoError(t, err)
		assert.Equal(t, post.ID, resp.ID)
	})

	t.Run("reader is forbidden from a foreign draft", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		reader := &identity.Actor{UserID: uuid.New(), Role: identity.RoleReader}
		_, err := f.service.GetArticle(ctx, reader, post.ID.String())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("author reads own draft", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		resp, err := f.service.GetArticle(ctx, actor, post.ID.String())
		require.NoError(t, err)
		assert.Equal(t, post.ID, resp.ID)
	})
}

func TestPostService_UpdateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("non-nil tag list fully replaces the set", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)
		post.TagIDs = []uuid.UUID{uuid.New(), uuid.New()}

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.tagRepo.On("FindBySlug", ctx, mock.AnythingOfType("string")).Return(nil, shared.ErrNotFound)
		f.tagRepo.On("Save", ctx, mock.AnythingOfType("*taxonomy.Tag")).Return(nil)
		f.postRepo.On("UpdateWithTags", ctx, post, mock.AnythingOfType("[]uuid.UUID")).Return(nil)

		tags := []string{"Fresh"}
		resp, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{Tags: &tags})
		require.NoError(t, err)
		assert.Len(t, resp.TagIDs, 1)

		f.postRepo.AssertCalled(t, "UpdateWithTags", ctx, post, mock.AnythingOfType("[]uuid.UUID"))
		f.postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("empty non-nil tag list clears all tags", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)
		post.TagIDs = []uuid.UUID{uuid.New()}

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("UpdateWithTags", ctx, post, mock.AnythingOfType("[]uuid.UUID")).Return(nil)

		tags := []string{}
		resp, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{Tags: &tags})
		require.NoError(t, err)
		assert.Empty(t, resp.TagIDs)
	})

	t.Run("nil tag field leaves associations untouched", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)
		existing := []uuid.UUID{uuid.New()}
		post.TagIDs = existing

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Update", ctx, post).Return(nil)

		title := "New Title"
		resp, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "New Title", resp.Title)
		assert.Equal(t, existing, resp.TagIDs)

		f.postRepo.AssertNotCalled(t, "UpdateWithTags", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("scheduled_at moves an existing draft to SCHEDULED", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Update", ctx, post).Return(nil)

		at := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
		resp, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{ScheduledAt: &at})
		require.NoError(t, err)
		assert.Equal(t, "SCHEDULED", resp.Status)
		require.NotNil(t, resp.ScheduledAt)
	})

	t.Run("malformed scheduled_at on update is rejected", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		at := "tomorrow"
		_, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{ScheduledAt: &at})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SCHEDULE", domainErr.Code)

		f.postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("writer cannot edit a foreign draft", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		title := "Hijacked"
		_, err := f.service.UpdateArticle(ctx, writerActor(), post.ID.String(), UpdateArticleRequest{Title: &title})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("published posts are immutable to their author", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := publishedPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		title := "Too Late"
		_, err := f.service.UpdateArticle(ctx, actor, post.ID.String(), UpdateArticleRequest{Title: &title})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPostService_ApproveArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("editor publishes a draft", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Update", ctx, post).Return(nil)

		resp, err := f.service.ApproveArticle(ctx, editorActor(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, "PUBLISHED", resp.Status)
		require.NotNil(t, resp.PublishedAt)
	})

	t.Run("approve is idempotent and publishedAt sticks", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())
		firstPublishedAt := *post.PublishedAt

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		resp, err := f.service.ApproveArticle(ctx, editorActor(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, "PUBLISHED", resp.Status)
		assert.True(t, resp.PublishedAt.Equal(firstPublishedAt))

		// Second approve never writes
		f.postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("writers cannot approve", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		_, err := f.service.ApproveArticle(ctx, writerActor(), post.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("rejected posts cannot be published", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())
		require.NoError(t, post.Reject())
		post.ClearDomainEvents()

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		_, err := f.service.ApproveArticle(ctx, editorActor(), post.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPostService_RejectArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("editor rejects a draft", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Update", ctx, post).Return(nil)

		resp, err := f.service.RejectArticle(ctx, editorActor(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
	})

	t.Run("published posts cannot be rejected", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		_, err := f.service.RejectArticle(ctx, editorActor(), post.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPostService_DeleteArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own draft", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := draftPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Delete", ctx, post.ID).Return(nil)

		require.NoError(t, f.service.DeleteArticle(ctx, actor, post.ID))
	})

	t.Run("admin deletes a published post", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())
		admin := &identity.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.postRepo.On("Delete", ctx, post.ID).Return(nil)

		require.NoError(t, f.service.DeleteArticle(ctx, admin, post.ID))
	})

	t.Run("author cannot delete once published", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()
		post := publishedPost(t, actor.UserID)

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		err := f.service.DeleteArticle(ctx, actor, post.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPostService_ListArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("writer listing is scoped to own posts", func(t *testing.T) {
		f := newPostFixture()
		actor := writerActor()

		f.postRepo.On("FindAll", ctx, mock.MatchedBy(func(filter content.PostFilter) bool {
			return filter.AuthorID != nil && *filter.AuthorID == actor.UserID
		})).Return([]*content.Post{}, int64(0), nil)

		_, _, err := f.service.ListArticles(ctx, actor, ArticleListFilter{})
		require.NoError(t, err)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("anonymous listing sees published public only", func(t *testing.T) {
		f := newPostFixture()

		f.postRepo.On("FindAll", ctx, mock.MatchedBy(func(filter content.PostFilter) bool {
			return filter.Status != nil && *filter.Status == content.PostStatusPublished &&
				filter.Visibility != nil && *filter.Visibility == content.PostVisibilityPublic
		})).Return([]*content.Post{}, int64(0), nil)

		_, _, err := f.service.ListArticles(ctx, nil, ArticleListFilter{Status: "DRAFT"})
		require.NoError(t, err)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("editor listing is unrestricted", func(t *testing.T) {
		f := newPostFixture()

		f.postRepo.On("FindAll", ctx, mock.MatchedBy(func(filter content.PostFilter) bool {
			return filter.AuthorID == nil && filter.Status != nil && *filter.Status == content.PostStatusDraft
		})).Return([]*content.Post{}, int64(0), nil)

		_, _, err := f.service.ListArticles(ctx, editorActor(), ArticleListFilter{Status: "DRAFT"})
		require.NoError(t, err)
		f.postRepo.AssertExpectations(t)
	})
}

func TestPostService_GetPublishedByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("empty slug returns published non-featured", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())

		f.postRepo.On("FindPublishedNonFeatured", ctx).Return([]*content.Post{post}, nil)

		articles, err := f.service.GetPublishedByCategory(ctx, "")
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, post.ID, articles[0].ID)
	})

	t.Run("slug scopes to the category regardless of featured", func(t *testing.T) {
		f := newPostFixture()
		category, err := taxonomy.NewCategory("Science", "")
		require.NoError(t, err)
		post := publishedPost(t, uuid.New())
		post.IsFeatured = true

		f.categoryRepo.On("FindBySlug", ctx, "science").Return(category, nil)
		f.postRepo.On("FindPublishedByCategory", ctx, category.ID).Return([]*content.Post{post}, nil)

		articles, err := f.service.GetPublishedByCategory(ctx, "science")
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.True(t, articles[0].IsFeatured)
	})

	t.Run("unknown category slug is not found", func(t *testing.T) {
		f := newPostFixture()

		f.categoryRepo.On("FindBySlug", ctx, "nope").Return(nil, shared.ErrNotFound)

		_, err := f.service.GetPublishedByCategory(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPostService_RecordView(t *testing.T) {
	ctx := context.Background()

	t.Run("first view counts, repeat within window does not", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.viewLogRepo.On("Create", ctx, mock.AnythingOfType("*content.ViewLog")).Return(nil).Once()
		f.postRepo.On("IncrementViews", ctx, post.ID).Return(nil).Once()

		require.NoError(t, f.service.RecordView(ctx, post.ID, "203.0.113.9", "test-agent"))
		require.NoError(t, f.service.RecordView(ctx, post.ID, "203.0.113.9", "test-agent"))

		f.viewLogRepo.AssertNumberOfCalls(t, "Create", 1)
		f.postRepo.AssertNumberOfCalls(t, "IncrementViews", 1)
	})

	t.Run("different IPs count independently", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.viewLogRepo.On("Create", ctx, mock.AnythingOfType("*content.ViewLog")).Return(nil)
		f.postRepo.On("IncrementViews", ctx, post.ID).Return(nil)

		require.NoError(t, f.service.RecordView(ctx, post.ID, "203.0.113.9", ""))
		require.NoError(t, f.service.RecordView(ctx, post.ID, "203.0.113.10", ""))

		f.viewLogRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("dedup store outage still counts the view", func(t *testing.T) {
		f := newPostFixture()
		post := publishedPost(t, uuid.New())
		f.viewDedup.err = assert.AnError

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		f.viewLogRepo.On("Create", ctx, mock.AnythingOfType("*content.ViewLog")).Return(nil)
		f.postRepo.On("IncrementViews", ctx, post.ID).Return(nil)

		require.NoError(t, f.service.RecordView(ctx, post.ID, "203.0.113.9", ""))
		f.viewLogRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("draft views are not counted", func(t *testing.T) {
		f := newPostFixture()
		post := draftPost(t, uuid.New())

		f.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		err := f.service.RecordView(ctx, post.ID, "203.0.113.9", "")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
