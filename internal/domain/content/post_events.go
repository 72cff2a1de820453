package content

import (
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Post
const AggregateTypePost = "Post"

// Post domain event types
const (
	EventTypePostCreated   = "PostCreated"
	EventTypePostPublished = "PostPublished"
	EventTypePostRejected  = "PostRejected"
)

// PostCreatedEvent is published when a post enters the workflow
type PostCreatedEvent struct {
	shared.BaseDomainEvent
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	AuthorID uuid.UUID `json:"author_id"`
}

// NewPostCreatedEvent creates a new PostCreatedEvent
func NewPostCreatedEvent(post *Post) *PostCreatedEvent {
	return &PostCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostCreated, AggregateTypePost, post.ID),
		Title:           post.Title,
		Slug:            post.Slug,
		AuthorID:        post.AuthorID,
	}
}

// PostPublishedEvent is published when an editor approves a post.
// Downstream notification is fire-and-forget; delivery failure never
// affects the publish itself.
type PostPublishedEvent struct {
	shared.BaseDomainEvent
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AuthorID    uuid.UUID `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
}

// NewPostPublishedEvent creates a new PostPublishedEvent
func NewPostPublishedEvent(post *Post) *PostPublishedEvent {
	publishedAt := time.Now()
	if post.PublishedAt != nil {
		publishedAt = *post.PublishedAt
	}
	return &PostPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostPublished, AggregateTypePost, post.ID),
		Title:           post.Title,
		Slug:            post.Slug,
		AuthorID:        post.AuthorID,
		PublishedAt:     publishedAt,
	}
}

// PostRejectedEvent is published when an editor rejects a post
type PostRejectedEvent struct {
	shared.BaseDomainEvent
	Title    string    `json:"title"`
	AuthorID uuid.UUID `json:"author_id"`
}

// NewPostRejectedEvent creates a new PostRejectedEvent
func NewPostRejectedEvent(post *Post) *PostRejectedEvent {
	return &PostRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostRejected, AggregateTypePost, post.ID),
		Title:           post.Title,
		AuthorID:        post.AuthorID,
	}
}
