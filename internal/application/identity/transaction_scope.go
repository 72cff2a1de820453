package identity

import (
	"context"

	"github.com/newsroom/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to identity repositories.
// Operations executed within a scope are committed or rolled back atomically;
// sign-up uses it to create the user and the writer profile as one write.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to identity repositories sharing
// the same underlying transaction.
type TransactionalRepositories interface {
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// WriterProfileRepo returns the writer profile repository scoped to the current transaction
	WriterProfileRepo() identity.WriterProfileRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	userRepo    identity.UserRepository
	profileRepo identity.WriterProfileRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	userRepo identity.UserRepository,
	profileRepo identity.WriterProfileRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// WriterProfileRepo returns the writer profile repository
func (s *NoOpTransactionScope) WriterProfileRepo() identity.WriterProfileRepository {
	return s.profileRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
