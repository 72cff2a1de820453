package publishing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/infrastructure/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCountCacheInvalidator struct {
	mock.Mock
}

func (m *MockCountCacheInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type publishedHandlerFixture struct {
	handler        *PostPublishedHandler
	userRepo       *MockUserRepository
	subscriberRepo *MockSubscriberRepository
	notifier       *MockNotifier
	countCache     *MockCountCacheInvalidator
}

func newPublishedHandlerFixture() *publishedHandlerFixture {
	f := &publishedHandlerFixture{
		userRepo:       new(MockUserRepository),
		subscriberRepo: new(MockSubscriberRepository),
		notifier:       new(MockNotifier),
		countCache:     new(MockCountCacheInvalidator),
	}
	f.handler = NewPostPublishedHandler(f.userRepo, f.subscriberRepo, f.notifier, f.countCache, zap.NewNop())
	return f
}

func publishedEvent(t *testing.T) (*content.PostPublishedEvent, *identity.User) {
	t.Helper()
	author, err := identity.NewUser("author@example.com", "Avery Author", "Str0ng!Passw0rd", identity.RoleWriter)
	require.NoError(t, err)
	post := publishedPost(t, author.ID)
	return content.NewPostPublishedEvent(post), author
}

func verifiedSubscribersFilter(filter shared.Filter) bool {
	return filter.Filters["verified"] == true
}

func TestPostPublishedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates counts and notifies author and subscribers", func(t *testing.T) {
		f := newPublishedHandlerFixture()
		event, author := publishedEvent(t)

		sub, err := content.NewSubscriber("fan@example.com", "Fan")
		require.NoError(t, err)
		sub.MarkVerified()

		f.countCache.On("Invalidate", ctx).Return(nil)
		f.userRepo.On("FindByID", ctx, author.ID).Return(author, nil)
		f.subscriberRepo.On("FindAll", ctx, mock.MatchedBy(verifiedSubscribersFilter)).
			Return([]*content.Subscriber{sub}, int64(1), nil)
		f.notifier.On("Send", ctx, mock.MatchedBy(func(msg notification.Message) bool {
			return msg.To == author.Email
		})).Return(nil)
		f.notifier.On("Send", ctx, mock.MatchedBy(func(msg notification.Message) bool {
			return msg.To == sub.Email
		})).Return(nil)

		require.NoError(t, f.handler.Handle(ctx, event))
		f.countCache.AssertExpectations(t)
		f.notifier.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("fan-out reaches subscribers beyond the first page", func(t *testing.T) {
		f := newPublishedHandlerFixture()
		event, author := publishedEvent(t)

		subscribers := make([]*content.Subscriber, 150)
		for i := range subscribers {
			sub, err := content.NewSubscriber(fmt.Sprintf("fan%d@example.com", i), "Fan")
			require.NoError(t, err)
			sub.MarkVerified()
			subscribers[i] = sub
		}

		pageOf := func(page int) func(shared.Filter) bool {
			return func(filter shared.Filter) bool {
				return verifiedSubscribersFilter(filter) && filter.Page == page
			}
		}

		f.countCache.On("Invalidate", ctx).Return(nil)
		f.userRepo.On("FindByID", ctx, author.ID).Return(author, nil)
		f.subscriberRepo.On("FindAll", ctx, mock.MatchedBy(pageOf(1))).
			Return(subscribers[:100], int64(150), nil)
		f.subscriberRepo.On("FindAll", ctx, mock.MatchedBy(pageOf(2))).
			Return(subscribers[100:], int64(150), nil)
		f.notifier.On("Send", ctx, mock.Anything).Return(nil)

		require.NoError(t, f.handler.Handle(ctx, event))
		f.subscriberRepo.AssertNumberOfCalls(t, "FindAll", 2)
		f.notifier.AssertNumberOfCalls(t, "Send", 151) // author plus every subscriber
	})

	t.Run("notification failures are swallowed", func(t *testing.T) {
		f := newPublishedHandlerFixture()
		event, author := publishedEvent(t)

		f.countCache.On("Invalidate", ctx).Return(errors.New("redis unreachable"))
		f.userRepo.On("FindByID", ctx, author.ID).Return(author, nil)
		f.subscriberRepo.On("FindAll", ctx, mock.Anything).
			Return([]*content.Subscriber{}, int64(0), nil)
		f.notifier.On("Send", ctx, mock.Anything).Return(errors.New("smtp unreachable"))

		assert.NoError(t, f.handler.Handle(ctx, event))
	})

	t.Run("missing author skips the author notification", func(t *testing.T) {
		f := newPublishedHandlerFixture()
		event, author := publishedEvent(t)

		f.countCache.On("Invalidate", ctx).Return(nil)
		f.userRepo.On("FindByID", ctx, author.ID).Return(nil, shared.ErrNotFound)
		f.subscriberRepo.On("FindAll", ctx, mock.Anything).
			Return([]*content.Subscriber{}, int64(0), nil)

		require.NoError(t, f.handler.Handle(ctx, event))
		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("rejects events of the wrong type", func(t *testing.T) {
		f := newPublishedHandlerFixture()
		post := publishedPost(t, uuid.New())

		err := f.handler.Handle(ctx, content.NewPostCreatedEvent(post))
		assert.Error(t, err)
	})
}
