package content

import (
	"strings"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
)

// PostStatus represents the workflow state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusScheduled PostStatus = "SCHEDULED"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusRejected  PostStatus = "REJECTED"
)

// PostVisibility controls who may read a published post
type PostVisibility string

const (
	PostVisibilityPublic  PostVisibility = "PUBLIC"
	PostVisibilityPrivate PostVisibility = "PRIVATE"
)

// PostType distinguishes content kinds
type PostType string

const (
	PostTypeArticle PostType = "ARTICLE"
)

// Post is the aggregate root for an article moving through the
// editorial workflow: DRAFT -> SCHEDULED -> PUBLISHED, with REJECTED
// reachable from any pre-publication state. PUBLISHED and REJECTED
// are terminal.
type Post struct {
	shared.BaseAggregateRoot
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	CoverImageURL   string
	Status          PostStatus
	Visibility      PostVisibility
	Type            PostType
	AuthorID        uuid.UUID
	CategoryID      *uuid.UUID
	PublishedAt     *time.Time
	ScheduledAt     *time.Time
	Views           int64
	Likes           int64
	IsFeatured      bool
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string

	// Loaded by the repository, not a gorm relation on the aggregate
	TagIDs []uuid.UUID `gorm:"-"`
}

// TableName returns the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// NewPost creates a new draft post
func NewPost(authorID uuid.UUID, title, slug, content string) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author ID cannot be empty")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	slug, err := normalizePostSlug(title, slug)
	if err != nil {
		return nil, err
	}

	post := &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Slug:              slug,
		Content:           content,
		Status:            PostStatusDraft,
		Visibility:        PostVisibilityPublic,
		Type:              PostTypeArticle,
		AuthorID:          authorID,
	}

	post.AddDomainEvent(NewPostCreatedEvent(post))

	return post, nil
}

// IsMutable reports whether the post can still be edited by its author
func (p *Post) IsMutable() bool {
	return p.Status == PostStatusDraft || p.Status == PostStatusScheduled
}

// IsPublished reports whether the post has been published
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsPubliclyReadable reports whether anonymous readers may see the post
func (p *Post) IsPubliclyReadable() bool {
	return p.Status == PostStatusPublished && p.Visibility == PostVisibilityPublic
}

// Schedule moves a draft to SCHEDULED for the given time
func (p *Post) Schedule(at time.Time) error {
	if p.Status != PostStatusDraft {
		return shared.ErrInvalidState
	}
	if at.Before(time.Now()) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Scheduled time must be in the future")
	}

	p.Status = PostStatusScheduled
	p.ScheduledAt = &at
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Publish moves the post to PUBLISHED. The first publish stamps
// PublishedAt; the timestamp never changes afterwards and the call is
// idempotent once published.
func (p *Post) Publish() error {
	if p.Status == PostStatusPublished {
		return nil
	}
	if p.Status == PostStatusRejected {
		return shared.ErrInvalidState
	}

	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPostPublishedEvent(p))

	return nil
}

// Reject moves a pre-publication post to the terminal REJECTED state
func (p *Post) Reject() error {
	if !p.IsMutable() {
		return shared.ErrInvalidState
	}

	p.Status = PostStatusRejected
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPostRejectedEvent(p))

	return nil
}

// UpdateContent applies an author edit. Nil fields in the patch are
// left untouched.
func (p *Post) UpdateContent(patch PostPatch) error {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.CoverImageURL != nil {
		p.CoverImageURL = *patch.CoverImageURL
	}
	if patch.Visibility != nil {
		switch *patch.Visibility {
		case PostVisibilityPublic, PostVisibilityPrivate:
			p.Visibility = *patch.Visibility
		default:
			return shared.NewDomainError("INVALID_VISIBILITY", "Unknown visibility")
		}
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	if patch.MetaTitle != nil {
		p.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		p.MetaDescription = *patch.MetaDescription
	}
	if patch.MetaKeywords != nil {
		p.MetaKeywords = *patch.MetaKeywords
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetTags replaces the full tag set
func (p *Post) SetTags(tagIDs []uuid.UUID) {
	p.TagIDs = tagIDs
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RecordView increments the denormalized view counter
func (p *Post) RecordView() {
	p.Views++
	p.UpdatedAt = time.Now()
}

// PostPatch is a partial update to a post's editable fields
type PostPatch struct {
	Title           *string
	Content         *string
	Excerpt         *string
	CoverImageURL   *string
	Visibility      *PostVisibility
	CategoryID      *uuid.UUID
	IsFeatured      *bool
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}
	return nil
}

func normalizePostSlug(title, slug string) (string, error) {
	if slug == "" {
		slug = taxonomy.Slugify(title)
	}
	if slug == "" || slug != taxonomy.Slugify(slug) {
		return "", shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase alphanumeric with hyphens")
	}
	if len(slug) > 300 {
		return "", shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 300 characters")
	}
	return slug, nil
}
