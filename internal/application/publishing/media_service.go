package publishing

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadURLExpiry is how long a presigned upload URL stays valid
const uploadURLExpiry = 15 * time.Minute

// MediaService hands out presigned upload URLs and tracks uploaded asset
// metadata. Files never pass through the backend.
type MediaService struct {
	mediaRepo content.MediaRepository
	storage   MediaStorage
	logger    *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(mediaRepo content.MediaRepository, storage MediaStorage, logger *zap.Logger) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		storage:   storage,
		logger:    logger,
	}
}

// RequestUpload returns a presigned PUT URL for a new media object
func (s *MediaService) RequestUpload(ctx context.Context, actor *identity.Actor, req RequestUploadRequest) (*RequestUploadResponse, error) {
	if err := identity.Authorize(actor, identity.ActionUploadMedia, identity.Resource{}); err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("media/%s/%s%s",
		time.Now().UTC().Format("2006/01"),
		uuid.New(),
		path.Ext(req.FileName))

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, uploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload URL",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return nil, shared.ErrDependencyFailure
	}

	return &RequestUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		PublicURL:  s.storage.PublicURL(storageKey),
		ExpiresAt:  expiresAt,
	}, nil
}

// RegisterMedia records metadata for an object the client has uploaded
func (s *MediaService) RegisterMedia(ctx context.Context, actor *identity.Actor, req RegisterMediaRequest) (*MediaResponse, error) {
	if err := identity.Authorize(actor, identity.ActionUploadMedia, identity.Resource{}); err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, shared.ErrDependencyFailure
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded object found for this storage key")
	}

	media, err := content.NewMedia(actor.UserID, s.storage.PublicURL(req.StorageKey), content.MediaType(req.Type))
	if err != nil {
		return nil, err
	}
	media.StorageKey = req.StorageKey
	media.AltText = req.AltText
	media.Caption = req.Caption

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}

	s.logger.Info("Media registered",
		zap.String("media_id", media.ID.String()),
		zap.String("storage_key", media.StorageKey))

	resp := ToMediaResponse(media)
	return &resp, nil
}

// ListMine lists the actor's own uploads
func (s *MediaService) ListMine(ctx context.Context, actor *identity.Actor, filter shared.Filter) ([]MediaResponse, int64, error) {
	if err := identity.Authorize(actor, identity.ActionUploadMedia, identity.Resource{}); err != nil {
		return nil, 0, err
	}

	media, total, err := s.mediaRepo.FindByUploader(ctx, actor.UserID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MediaResponse, len(media))
	for i, m := range media {
		responses[i] = ToMediaResponse(m)
	}
	return responses, total, nil
}

// DeleteMedia removes an asset's metadata and its stored object. Only the
// uploader or an admin may delete.
func (s *MediaService) DeleteMedia(ctx context.Context, actor *identity.Actor, id uuid.UUID) error {
	if actor == nil {
		return shared.ErrUnauthorized
	}

	media, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if media.UploadedByID != actor.UserID && actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	if media.StorageKey != "" {
		if err := s.storage.DeleteObject(ctx, media.StorageKey); err != nil {
			s.logger.Warn("Failed to delete stored object",
				zap.String("storage_key", media.StorageKey),
				zap.Error(err))
		}
	}

	return nil
}
