package content

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
)

var subscriberEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Subscriber is a newsletter opt-in
type Subscriber struct {
	shared.BaseEntity
	Email      string
	Name       string
	Verified   bool
	VerifiedAt *time.Time
}

// TableName returns the table name for GORM
func (Subscriber) TableName() string {
	return "subscribers"
}

// NewSubscriber creates an unverified newsletter subscription
func NewSubscriber(email, name string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !subscriberEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return &Subscriber{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Name:       strings.TrimSpace(name),
	}, nil
}

// MarkVerified records a completed verification
func (s *Subscriber) MarkVerified() {
	if s.Verified {
		return
	}
	now := time.Now()
	s.Verified = true
	s.VerifiedAt = &now
	s.UpdatedAt = now
}

// SubscriberRepository defines the interface for subscriber persistence
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *Subscriber) error
	Update(ctx context.Context, subscriber *Subscriber) error
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Subscriber, int64, error)
}
