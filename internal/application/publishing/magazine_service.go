package publishing

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MagazineService handles curated magazine issues
type MagazineService struct {
	magazineRepo content.MagazineRepository
	logger       *zap.Logger
}

// NewMagazineService creates a new magazine service
func NewMagazineService(magazineRepo content.MagazineRepository, logger *zap.Logger) *MagazineService {
	return &MagazineService{
		magazineRepo: magazineRepo,
		logger:       logger,
	}
}

// CreateMagazine creates a new draft issue
func (s *MagazineService) CreateMagazine(ctx context.Context, actor *identity.Actor, req CreateMagazineRequest) (*MagazineResponse, error) {
	if err := identity.Authorize(actor, identity.ActionCreateMagazine, identity.Resource{}); err != nil {
		return nil, err
	}

	magazine, err := content.NewMagazine(actor.UserID, req.Title, req.Slug, req.IssueNumber)
	if err != nil {
		return nil, err
	}
	magazine.Description = req.Description
	magazine.CoverImageURL = req.CoverImageURL

	exists, err := s.magazineRepo.ExistsBySlug(ctx, magazine.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A magazine with this slug already exists")
	}

	if err := s.magazineRepo.Create(ctx, magazine); err != nil {
		return nil, err
	}

	s.logger.Info("Magazine created",
		zap.String("magazine_id", magazine.ID.String()),
		zap.Int("issue_number", magazine.IssueNumber))

	resp := ToMagazineResponse(magazine)
	return &resp, nil
}

// ApproveMagazine publishes an issue. Idempotent once published.
func (s *MagazineService) ApproveMagazine(ctx context.Context, actor *identity.Actor, id uuid.UUID) (*MagazineResponse, error) {
	if err := identity.Authorize(actor, identity.ActionApproveMagazine, identity.Resource{}); err != nil {
		return nil, err
	}

	magazine, err := s.magazineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alreadyPublished := magazine.Status == content.MagazineStatusPublished
	if err := magazine.Publish(); err != nil {
		return nil, err
	}

	if !alreadyPublished {
		if err := s.magazineRepo.Update(ctx, magazine); err != nil {
			return nil, err
		}
		s.logger.Info("Magazine published",
			zap.String("magazine_id", magazine.ID.String()),
			zap.String("approved_by", actor.UserID.String()))
	}

	resp := ToMagazineResponse(magazine)
	return &resp, nil
}

// GetMagazines lists issues. Anonymous callers see published issues only.
func (s *MagazineService) GetMagazines(ctx context.Context, actor *identity.Actor, filter shared.Filter) ([]MagazineResponse, int64, error) {
	staff := actor != nil && (actor.Role == identity.RoleAdmin || actor.Role == identity.RoleEditor)
	if !staff {
		if filter.Filters == nil {
			filter.Filters = make(map[string]interface{})
		}
		filter.Filters["status"] = string(content.MagazineStatusPublished)
	}

	magazines, total, err := s.magazineRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MagazineResponse, len(magazines))
	for i, m := range magazines {
		responses[i] = ToMagazineResponse(m)
	}
	return responses, total, nil
}

// GetMagazineBySlug retrieves a single issue
func (s *MagazineService) GetMagazineBySlug(ctx context.Context, actor *identity.Actor, slug string) (*MagazineResponse, error) {
	magazine, err := s.magazineRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if magazine.Status != content.MagazineStatusPublished {
		staff := actor != nil && (actor.Role == identity.RoleAdmin || actor.Role == identity.RoleEditor)
		if !staff {
			return nil, shared.ErrNotFound
		}
	}

	resp := ToMagazineResponse(magazine)
	return &resp, nil
}
