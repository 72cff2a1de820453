package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
)

// RegistrationService handles self-service sign-up. The user row (and writer
// profile, for WRITER sign-ups) is committed first; the verification message
// is sent afterwards and a send failure compensates by deleting the account,
// so a user never exists without having been notified.
type RegistrationService struct {
	userRepo    identity.UserRepository
	profileRepo identity.WriterProfileRepository
	txScope     TransactionScope
	notifier    notification.Notifier
	logger      *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	userRepo identity.UserRepository,
	profileRepo identity.WriterProfileRepository,
	txScope TransactionScope,
	notifier notification.Notifier,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		txScope:     txScope,
		notifier:    notifier,
		logger:      logger,
	}
}

// SignUp registers a new account
func (s *RegistrationService) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	role := identity.RoleReader
	if req.Role != "" {
		role = identity.Role(req.Role)
	}
	if !identity.SignUpRole(role) {
		return nil, shared.NewDomainError("INVALID_ROLE", "Only WRITER and READER accounts can self-register")
	}

	if req.Password != req.ConfirmPassword {
		return nil, shared.NewDomainError("PASSWORD_MISMATCH", "Password confirmation does not match")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password, role)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		if role == identity.RoleWriter {
			profile, err := identity.NewWriterProfile(user.ID)
			if err != nil {
				return err
			}
			return repos.WriterProfileRepo().Create(ctx, profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Error("Verification send failed, compensating sign-up",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		s.compensate(ctx, user)
		return nil, shared.ErrDependencyFailure
	}

	s.logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *RegistrationService) sendVerification(ctx context.Context, user *identity.User) error {
	return s.notifier.Send(ctx, notification.Message{
		To:      user.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nWelcome aboard. Please verify your email address to activate your account.\n",
			user.Name),
	})
}

// compensate undoes the committed sign-up writes. Failures here are logged
// and swallowed: the caller already reports a dependency failure.
func (s *RegistrationService) compensate(ctx context.Context, user *identity.User) {
	if user.Role == identity.RoleWriter {
		if err := s.profileRepo.DeleteByUserID(ctx, user.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Compensating profile delete failed",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Compensating user delete failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}
