package publishing

import (
	"context"
	"time"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/infrastructure/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscribeRequest represents a newsletter opt-in
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=200"`
	Name  string `json:"name" binding:"omitempty,max=200"`
}

// SubscriberResponse represents a subscriber in API responses
type SubscriberResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriberService handles newsletter opt-ins. Unlike sign-up, the
// verification message is fire-and-forget: a send failure is logged and the
// subscription stands.
type SubscriberService struct {
	subscriberRepo content.SubscriberRepository
	notifier       notification.Notifier
	logger         *zap.Logger
}

// NewSubscriberService creates a new subscriber service
func NewSubscriberService(
	subscriberRepo content.SubscriberRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *SubscriberService {
	return &SubscriberService{
		subscriberRepo: subscriberRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// Subscribe registers a newsletter subscription
func (s *SubscriberService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriberResponse, error) {
	subscriber, err := content.NewSubscriber(req.Email, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.subscriberRepo.ExistsByEmail(ctx, subscriber.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This email is already subscribed")
	}

	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		return nil, err
	}

	if err := s.notifier.Send(ctx, notification.Message{
		To:      subscriber.Email,
		Subject: "Confirm your newsletter subscription",
		Body:    "Thanks for subscribing. Please confirm your email address to start receiving the newsletter.\n",
	}); err != nil {
		s.logger.Warn("Subscription confirmation send failed",
			zap.String("email", subscriber.Email),
			zap.Error(err))
	}

	s.logger.Info("Newsletter subscription created",
		zap.String("subscriber_id", subscriber.ID.String()))

	return &SubscriberResponse{
		ID:        subscriber.ID,
		Email:     subscriber.Email,
		Name:      subscriber.Name,
		Verified:  subscriber.Verified,
		CreatedAt: subscriber.CreatedAt,
	}, nil
}

// VerifySubscriber marks a subscription as verified
func (s *SubscriberService) VerifySubscriber(ctx context.Context, email string) error {
	subscriber, err := s.subscriberRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	subscriber.MarkVerified()
	return s.subscriberRepo.Update(ctx, subscriber)
}
