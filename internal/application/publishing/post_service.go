package publishing

import (
	"context"
	"errors"
	"fmt"
	"time"

	apptaxonomy "github.com/newsroom/backend/internal/application/taxonomy"
	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultViewDedupWindow is how long one IP counts a single view of a post
const DefaultViewDedupWindow = 30 * time.Minute

// PostService drives articles through the editorial workflow:
// DRAFT -> SCHEDULED -> PUBLISHED, with REJECTED reachable from any
// pre-publication state. Authorization is enforced here, against the
// single policy table in the identity package.
type PostService struct {
	postRepo        content.PostRepository
	categoryRepo    taxonomy.CategoryRepository
	viewLogRepo     content.ViewLogRepository
	taxonomyService *apptaxonomy.Service
	viewDedup       shared.IdempotencyStore
	dedupWindow     time.Duration
	logger          *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo content.PostRepository,
	categoryRepo taxonomy.CategoryRepository,
	viewLogRepo content.ViewLogRepository,
	taxonomyService *apptaxonomy.Service,
	viewDedup shared.IdempotencyStore,
	dedupWindow time.Duration,
	logger *zap.Logger,
) *PostService {
	if dedupWindow <= 0 {
		dedupWindow = DefaultViewDedupWindow
	}
	return &PostService{
		postRepo:        postRepo,
		categoryRepo:    categoryRepo,
		viewLogRepo:     viewLogRepo,
		taxonomyService: taxonomyService,
		viewDedup:       viewDedup,
		dedupWindow:     dedupWindow,
		logger:          logger,
	}
}

// CreateArticle creates a new draft article for the actor
func (s *PostService) CreateArticle(ctx context.Context, actor *identity.Actor, req CreateArticleRequest) (*ArticleResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCreatePost, identity.Resource{}); err != nil {
		return nil, err
	}

	post, err := content.NewPost(actor.UserID, req.Title, req.Slug, req.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.postRepo.ExistsBySlug(ctx, post.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An article with this slug already exists")
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID, req.CategoryName)
	if err != nil {
		return nil, err
	}

	patch := content.PostPatch{CategoryID: categoryID}
	if req.Excerpt != "" {
		patch.Excerpt = &req.Excerpt
	}
	if req.CoverImageURL != "" {
		patch.CoverImageURL = &req.CoverImageURL
	}
	if req.Visibility != "" {
		visibility := content.PostVisibility(req.Visibility)
		patch.Visibility = &visibility
	}
	if req.MetaTitle != "" {
		patch.MetaTitle = &req.MetaTitle
	}
	if req.MetaDescription != "" {
		patch.MetaDescription = &req.MetaDescription
	}
	if req.MetaKeywords != "" {
		patch.MetaKeywords = &req.MetaKeywords
	}
	if err := post.UpdateContent(patch); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		tags, err := s.taxonomyService.ResolveTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		post.SetTags(tagIDs(tags))
	}

	if req.ScheduledAt != "" {
		at, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_SCHEDULE", "scheduled_at must be RFC3339")
		}
		if err := post.Schedule(at); err != nil {
			return nil, err
		}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Article created",
		zap.String("post_id", post.ID.String()),
		zap.String("slug", post.Slug),
		zap.String("author_id", post.AuthorID.String()))

	resp := ToArticleResponse(post)
	return &resp, nil
}

// GetArticle retrieves an article by ID or slug. Published public articles
// are readable by anyone, including anonymous visitors; everything else
// goes through the access policy.
func (s *PostService) GetArticle(ctx context.Context, actor *identity.Actor, idOrSlug string) (*ArticleResponse, error) {
	post, err := s.findByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if !post.IsPubliclyReadable() {
		if err := identity.Authorize(actor, identity.ActionReadPost, postResource(post)); err != nil {
			return nil, err
		}
	}

	resp := ToArticleResponse(post)
	return &resp, nil
}

// UpdateArticle applies a partial update. A non-nil tag list replaces the
// full association set atomically with the content patch, and a
// scheduled_at value moves a draft into SCHEDULED.
func (s *PostService) UpdateArticle(ctx context.Context, actor *identity.Actor, idOrSlug string, req UpdateArticleRequest) (*ArticleResponse, error) {
	post, err := s.findByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if err := identity.Authorize(actor, identity.ActionUpdatePost, postResource(post)); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	patch := content.PostPatch{
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		CoverImageURL:   req.CoverImageURL,
		CategoryID:      req.CategoryID,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
	}
	if req.Visibility != nil {
		visibility := content.PostVisibility(*req.Visibility)
		patch.Visibility = &visibility
	}
	if err := post.UpdateContent(patch); err != nil {
		return nil, err
	}

	if req.ScheduledAt != nil {
		at, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_SCHEDULE", "scheduled_at must be RFC3339")
		}
		if err := post.Schedule(at); err != nil {
			return nil, err
		}
	}

	if req.Tags != nil {
		tags, err := s.taxonomyService.ResolveTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		ids := tagIDs(tags)
		post.SetTags(ids)
		if err := s.postRepo.UpdateWithTags(ctx, post, ids); err != nil {
			return nil, err
		}
	} else if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	resp := ToArticleResponse(post)
	return &resp, nil
}

// ApproveArticle publishes an article. The call is idempotent once
// published and the first publish permanently stamps the publication time.
func (s *PostService) ApproveArticle(ctx context.Context, actor *identity.Actor, id uuid.UUID) (*ArticleResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := identity.Authorize(actor, identity.ActionApprovePost, postResource(post)); err != nil {
		return nil, err
	}

	alreadyPublished := post.IsPublished()
	if err := post.Publish(); err != nil {
		return nil, err
	}

	if !alreadyPublished {
		if err := s.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
		s.logger.Info("Article published",
			zap.String("post_id", post.ID.String()),
			zap.String("approved_by", actor.UserID.String()))
	}

	resp := ToArticleResponse(post)
	return &resp, nil
}

// RejectArticle moves a pre-publication article to the terminal REJECTED state
func (s *PostService) RejectArticle(ctx context.Context, actor *identity.Actor, id uuid.UUID) (*ArticleResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := identity.Authorize(actor, identity.ActionRejectPost, postResource(post)); err != nil {
		return nil, err
	}

	if err := post.Reject(); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Article rejected",
		zap.String("post_id", post.ID.String()),
		zap.String("rejected_by", actor.UserID.String()))

	resp := ToArticleResponse(post)
	return &resp, nil
}

// DeleteArticle hard-deletes an article together with its tag and media
// associations, comments and view logs
func (s *PostService) DeleteArticle(ctx context.Context, actor *identity.Actor, id uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := identity.Authorize(actor, identity.ActionDeletePost, postResource(post)); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Article deleted",
		zap.String("post_id", id.String()),
		zap.String("deleted_by", actor.UserID.String()))

	return nil
}

// ListArticles lists articles visible to the actor. Admins and editors see
// everything, writers see their own work, readers and anonymous visitors
// see published public articles only.
func (s *PostService) ListArticles(ctx context.Context, actor *identity.Actor, filter ArticleListFilter) ([]ArticleListResponse, int64, error) {
	domainFilter := content.NewPostFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.SortBy = filter.OrderBy
		domainFilter.SortOrder = filter.OrderDir
	}
	if filter.Status != "" {
		status := content.PostStatus(filter.Status)
		domainFilter.Status = &status
	}
	domainFilter.AuthorID = filter.AuthorID
	domainFilter.CategoryID = filter.CategoryID
	domainFilter.Keyword = filter.Keyword

	role := identity.RoleReader
	if actor != nil {
		role = actor.Role
	}
	switch role {
	case identity.RoleAdmin, identity.RoleEditor:
		// unrestricted
	case identity.RoleWriter:
		domainFilter.AuthorID = &actor.UserID
	default:
		published := content.PostStatusPublished
		public := content.PostVisibilityPublic
		domainFilter.Status = &published
		domainFilter.Visibility = &public
	}

	posts, total, err := s.postRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ArticleListResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToArticleListResponse(p)
	}
	return responses, total, nil
}

// GetFeaturedArticles returns featured published articles, newest first
func (s *PostService) GetFeaturedArticles(ctx context.Context) ([]ArticleListResponse, error) {
	posts, err := s.postRepo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return toListResponses(posts), nil
}

// GetPublishedByCategory returns published articles for a category slug.
// An empty slug returns all published non-featured articles.
func (s *PostService) GetPublishedByCategory(ctx context.Context, categorySlug string) ([]ArticleListResponse, error) {
	if categorySlug == "" {
		posts, err := s.postRepo.FindPublishedNonFeatured(ctx)
		if err != nil {
			return nil, err
		}
		return toListResponses(posts), nil
	}

	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.FindPublishedByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return toListResponses(posts), nil
}

// RecordView counts a view of a published article. Views are deduplicated
// per IP within the dedup window; the append-only view log and the
// denormalized counter are both written.
func (s *PostService) RecordView(ctx context.Context, postID uuid.UUID, viewerIP, userAgent string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.IsPublished() {
		return shared.ErrInvalidState
	}

	if s.viewDedup != nil && viewerIP != "" {
		key := fmt.Sprintf("view:%s:%s", postID, viewerIP)
		isNew, err := s.viewDedup.MarkProcessed(ctx, key, s.dedupWindow)
		if err != nil {
			// Store outage falls back to counting every view
			s.logger.Warn("View dedup store unavailable",
				zap.String("post_id", postID.String()),
				zap.Error(err))
		} else if !isNew {
			return nil
		}
	}

	viewLog, err := content.NewViewLog(postID, viewerIP, userAgent)
	if err != nil {
		return err
	}
	if err := s.viewLogRepo.Create(ctx, viewLog); err != nil {
		return err
	}

	return s.postRepo.IncrementViews(ctx, postID)
}

func (s *PostService) resolveCategory(ctx context.Context, categoryID *uuid.UUID, categoryName string) (*uuid.UUID, error) {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		return categoryID, nil
	}
	if categoryName != "" {
		category, err := s.taxonomyService.ResolveCategory(ctx, categoryName, "", nil)
		if err != nil {
			return nil, err
		}
		return &category.ID, nil
	}
	return nil, nil
}

func (s *PostService) findByIDOrSlug(ctx context.Context, idOrSlug string) (*content.Post, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.postRepo.FindByID(ctx, id)
	}
	return s.postRepo.FindBySlug(ctx, idOrSlug)
}

// postResource translates post state into the role-neutral terms the
// access policy decides on
func postResource(p *content.Post) identity.Resource {
	return identity.Resource{
		OwnerID:   p.AuthorID,
		Mutable:   p.IsMutable(),
		Published: p.IsPublished(),
		Public:    p.Visibility == content.PostVisibilityPublic,
	}
}

func tagIDs(tags []taxonomy.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids
}

func toListResponses(posts []*content.Post) []ArticleListResponse {
	responses := make([]ArticleListResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToArticleListResponse(p)
	}
	return responses
}
