package identity

import (
	"context"
	"errors"

	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user profile and administration operations
type UserService struct {
	userRepo    identity.UserRepository
	profileRepo identity.WriterProfileRepository
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	profileRepo identity.WriterProfileRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfileByUsername returns the public profile for a username,
// including writer details when the user has them
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var profile *identity.WriterProfile
	if user.Role == identity.RoleWriter {
		profile, err = s.profileRepo.FindByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	resp := ToProfileResponse(user, profile)
	return &resp, nil
}

// UpdateName changes the actor's own display name
func (s *UserService) UpdateName(ctx context.Context, actor *identity.Actor, req UpdateNameRequest) (*UserResponse, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateName(req.Name); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangeRole assigns a new role to a user. Administrators only.
func (s *UserService) ChangeRole(ctx context.Context, actor *identity.Actor, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	if err := identity.Authorize(actor, identity.ActionManageUsers, identity.Resource{}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role),
		zap.String("changed_by", actor.UserID.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns users matching the filter. Administrators only.
func (s *UserService) ListUsers(ctx context.Context, actor *identity.Actor, filter identity.UserFilter) ([]UserResponse, int64, error) {
	if err := identity.Authorize(actor, identity.ActionManageUsers, identity.Resource{}); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses, total, nil
}
