package query

import (
	"context"
	"time"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryCountCache caches the per-category published article counts
type CategoryCountCache interface {
	Get(ctx context.Context) (map[uuid.UUID]int64, error)
	Set(ctx context.Context, counts map[uuid.UUID]int64) error
}

// CategoryWithCount is a category projection carrying its published
// public article count
type CategoryWithCount struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	PostCount   int64      `json:"post_count"`
}

// ArticleView is a denormalized article projection for public reads
type ArticleView struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content,omitempty"`
	Excerpt        string     `json:"excerpt,omitempty"`
	CoverImageURL  string     `json:"cover_image_url,omitempty"`
	AuthorName     string     `json:"author_name,omitempty"`
	AuthorUsername string     `json:"author_username,omitempty"`
	CategoryName   string     `json:"category_name,omitempty"`
	CategorySlug   string     `json:"category_slug,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Views          int64      `json:"views"`
}

// ReadService is the side-effect-free read façade over published content.
// It never records views; that is the RecordView write path.
type ReadService struct {
	postRepo     content.PostRepository
	categoryRepo taxonomy.CategoryRepository
	userRepo     identity.UserRepository
	countCache   CategoryCountCache
	logger       *zap.Logger
}

// NewReadService creates a new read service
func NewReadService(
	postRepo content.PostRepository,
	categoryRepo taxonomy.CategoryRepository,
	userRepo identity.UserRepository,
	countCache CategoryCountCache,
	logger *zap.Logger,
) *ReadService {
	return &ReadService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		countCache:   countCache,
		logger:       logger,
	}
}

// GetCategoriesWithCounts lists all categories with their published public
// article counts. Counts come from the cache when fresh; a cache outage
// falls back to counting directly.
func (s *ReadService) GetCategoriesWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}

	counts := s.cachedCounts(ctx)
	if counts == nil {
		counts, err = s.postRepo.CountPublishedPublicByCategory(ctx)
		if err != nil {
			return nil, err
		}
		if s.countCache != nil {
			if err := s.countCache.Set(ctx, counts); err != nil {
				s.logger.Warn("Failed to cache category counts", zap.Error(err))
			}
		}
	}

	result := make([]CategoryWithCount, len(categories))
	for i, c := range categories {
		result[i] = CategoryWithCount{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ParentID:    c.ParentID,
			PostCount:   counts[c.ID],
		}
	}
	return result, nil
}

func (s *ReadService) cachedCounts(ctx context.Context) map[uuid.UUID]int64 {
	if s.countCache == nil {
		return nil
	}
	counts, err := s.countCache.Get(ctx)
	if err != nil {
		s.logger.Warn("Category count cache read failed", zap.Error(err))
		return nil
	}
	return counts
}

// GetArticleBySlug returns a published public article with its author and
// category resolved. Anything not publicly readable is reported as not found.
func (s *ReadService) GetArticleBySlug(ctx context.Context, slug string) (*ArticleView, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPubliclyReadable() {
		return nil, shared.ErrNotFound
	}

	view := s.toArticleView(ctx, post, true)
	return &view, nil
}

// GetArticlesByCategorySlug lists published public articles in a category,
// newest creation first
func (s *ReadService) GetArticlesByCategorySlug(ctx context.Context, slug string, page, pageSize int) ([]ArticleView, int64, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}

	filter := content.NewPostFilter().
		WithStatus(content.PostStatusPublished).
		WithCategory(category.ID)
	visibility := content.PostVisibilityPublic
	filter.Visibility = &visibility
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	posts, total, err := s.postRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ArticleView, len(posts))
	for i, p := range posts {
		views[i] = s.toArticleView(ctx, p, false)
		views[i].CategoryName = category.Name
		views[i].CategorySlug = category.Slug
	}
	return views, total, nil
}

// toArticleView assembles the projection. Lookups that fail leave the
// corresponding fields empty rather than failing the read.
func (s *ReadService) toArticleView(ctx context.Context, post *content.Post, resolveCategory bool) ArticleView {
	view := ArticleView{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Content:       post.Content,
		Excerpt:       post.Excerpt,
		CoverImageURL: post.CoverImageURL,
		PublishedAt:   post.PublishedAt,
		Views:         post.Views,
	}

	if author, err := s.userRepo.FindByID(ctx, post.AuthorID); err == nil {
		view.AuthorName = author.Name
		view.AuthorUsername = author.Username
	} else {
		s.logger.Warn("Author lookup failed for article view",
			zap.String("post_id", post.ID.String()),
			zap.Error(err))
	}

	if resolveCategory && post.CategoryID != nil {
		if category, err := s.categoryRepo.FindByID(ctx, *post.CategoryID); err == nil {
			view.CategoryName = category.Name
			view.CategorySlug = category.Slug
		}
	}

	return view
}
