package persistence

import (
	"context"

	appidentity "github.com/newsroom/backend/internal/application/identity"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormIdentityTransactionScope implements the identity TransactionScope
// using GORM transactions.
type GormIdentityTransactionScope struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, passed down to tx-scoped repositories
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// SetOutboxEventSaver sets the outbox event saver installed on every
// transaction-scoped repository the scope hands out
func (s *GormIdentityTransactionScope) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	s.outboxSaver = saver
}

// Execute runs the given function within a database transaction
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormIdentityRepositories{tx: tx, outboxSaver: s.outboxSaver})
	})
}

type gormIdentityRepositories struct {
	tx          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormIdentityRepositories) UserRepo() identity.UserRepository {
	repo := NewGormUserRepository(r.tx)
	if r.outboxSaver != nil {
		repo.SetOutboxEventSaver(r.outboxSaver)
	}
	return repo
}

// WriterProfileRepo returns the writer profile repository scoped to the current transaction
func (r *gormIdentityRepositories) WriterProfileRepo() identity.WriterProfileRepository {
	return NewGormWriterProfileRepository(r.tx)
}

var _ appidentity.TransactionScope = (*GormIdentityTransactionScope)(nil)
var _ appidentity.TransactionalRepositories = (*gormIdentityRepositories)(nil)
