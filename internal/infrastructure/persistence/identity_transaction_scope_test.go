package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	appidentity "github.com/newsroom/backend/internal/application/identity"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingEventSaver captures the events repositories hand to the outbox.
type recordingEventSaver struct {
	events []shared.DomainEvent
}

func (s *recordingEventSaver) SaveEvents(ctx context.Context, txProvider interface{}, events ...shared.DomainEvent) error {
	if _, ok := txProvider.(*gorm.DB); !ok {
		return fmt.Errorf("txProvider must be a *gorm.DB, got %T", txProvider)
	}
	s.events = append(s.events, events...)
	return nil
}

func TestIdentityTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits user and profile together", func(t *testing.T) {
		db := setupUserTestDB(t)
		scope := NewGormIdentityTransactionScope(db)
		user := newTestUser(t, "scoped@example.com", identity.RoleWriter)

		err := scope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
			if err := repos.UserRepo().Create(ctx, user); err != nil {
				return err
			}
			profile, err := identity.NewWriterProfile(user.ID)
			if err != nil {
				return err
			}
			return repos.WriterProfileRepo().Create(ctx, profile)
		})
		require.NoError(t, err)

		found, err := NewGormUserRepository(db).FindByEmail(ctx, "scoped@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("rolls back every write on failure", func(t *testing.T) {
		db := setupUserTestDB(t)
		scope := NewGormIdentityTransactionScope(db)
		user := newTestUser(t, "rollback@example.com", identity.RoleWriter)

		err := scope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
			if err := repos.UserRepo().Create(ctx, user); err != nil {
				return err
			}
			return errors.New("profile creation exploded")
		})
		require.Error(t, err)

		_, err = NewGormUserRepository(db).FindByEmail(ctx, "rollback@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("scoped repositories carry the outbox saver", func(t *testing.T) {
		db := setupUserTestDB(t)
		saver := &recordingEventSaver{}
		scope := NewGormIdentityTransactionScope(db)
		scope.SetOutboxEventSaver(saver)
		user := newTestUser(t, "outbox@example.com", identity.RoleReader)

		err := scope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
			return repos.UserRepo().Create(ctx, user)
		})
		require.NoError(t, err)

		require.Len(t, saver.events, 1)
		registered, ok := saver.events[0].(*identity.UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, user.ID, registered.AggregateID())
		assert.Equal(t, user.Email, registered.Email)
	})
}
