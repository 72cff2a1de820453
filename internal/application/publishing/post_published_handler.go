package publishing

import (
	"context"
	"fmt"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
)

// CountCacheInvalidator drops the cached per-category article counts
type CountCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PostPublishedHandler reacts to a published article: it invalidates the
// category count cache and sends best-effort notifications to the author
// and the verified newsletter subscribers. Notification failures are logged
// and never surfaced to the publish path.
type PostPublishedHandler struct {
	userRepo       identity.UserRepository
	subscriberRepo content.SubscriberRepository
	notifier       notification.Notifier
	countCache     CountCacheInvalidator
	logger         *zap.Logger
}

// NewPostPublishedHandler creates a new handler
func NewPostPublishedHandler(
	userRepo identity.UserRepository,
	subscriberRepo content.SubscriberRepository,
	notifier notification.Notifier,
	countCache CountCacheInvalidator,
	logger *zap.Logger,
) *PostPublishedHandler {
	return &PostPublishedHandler{
		userRepo:       userRepo,
		subscriberRepo: subscriberRepo,
		notifier:       notifier,
		countCache:     countCache,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PostPublishedHandler) EventTypes() []string {
	return []string{content.EventTypePostPublished}
}

// Handle processes a PostPublished event
func (h *PostPublishedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	published, ok := event.(*content.PostPublishedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if h.countCache != nil {
		if err := h.countCache.Invalidate(ctx); err != nil {
			h.logger.Warn("Failed to invalidate category count cache", zap.Error(err))
		}
	}

	h.notifyAuthor(ctx, published)
	h.notifySubscribers(ctx, published)

	return nil
}

func (h *PostPublishedHandler) notifyAuthor(ctx context.Context, event *content.PostPublishedEvent) {
	author, err := h.userRepo.FindByID(ctx, event.AuthorID)
	if err != nil {
		h.logger.Warn("Author lookup failed for publish notification",
			zap.String("author_id", event.AuthorID.String()),
			zap.Error(err))
		return
	}

	msg := notification.Message{
		To:      author.Email,
		Subject: fmt.Sprintf("Your article %q is live", event.Title),
		Body: fmt.Sprintf("Hi %s,\n\nYour article %q has been approved and published.\n",
			author.Name, event.Title),
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Warn("Author publish notification failed",
			zap.String("author_id", author.ID.String()),
			zap.Error(err))
	}
}

// notifySubscribers fans the publish notice out to every verified
// subscriber, paging through the repository so the fan-out is not bounded
// by a single page.
func (h *PostPublishedHandler) notifySubscribers(ctx context.Context, event *content.PostPublishedEvent) {
	filter := shared.Filter{
		Filters:  map[string]interface{}{"verified": true},
		Page:     1,
		PageSize: 100,
	}
	for {
		subscribers, total, err := h.subscriberRepo.FindAll(ctx, filter)
		if err != nil {
			h.logger.Warn("Subscriber lookup failed for publish notification", zap.Error(err))
			return
		}
		if len(subscribers) == 0 {
			return
		}

		for _, sub := range subscribers {
			msg := notification.Message{
				To:      sub.Email,
				Subject: fmt.Sprintf("New article: %s", event.Title),
				Body:    fmt.Sprintf("A new article %q has just been published.\n", event.Title),
			}
			if err := h.notifier.Send(ctx, msg); err != nil {
				h.logger.Warn("Subscriber notification failed",
					zap.String("email", sub.Email),
					zap.Error(err))
			}
		}

		if int64(filter.Page)*int64(filter.Limit()) >= total {
			return
		}
		filter.Page++
	}
}

var _ shared.EventHandler = (*PostPublishedHandler)(nil)
