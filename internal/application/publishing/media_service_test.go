package publishing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMediaFixture() (*MediaService, *MockMediaRepository, *MockMediaStorage) {
	repo := new(MockMediaRepository)
	storage := new(MockMediaStorage)
	return NewMediaService(repo, storage, zap.NewNop()), repo, storage
}

func TestMediaService_RequestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("writer gets a presigned URL with a dated key", func(t *testing.T) {
		service, _, storage := newMediaFixture()
		expiresAt := time.Now().Add(uploadURLExpiry)

		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/png", uploadURLExpiry).
			Return("https://bucket.example.com/presigned", expiresAt, nil)
		storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://cdn.example.com/obj")

		resp, err := service.RequestUpload(ctx, writerActor(), RequestUploadRequest{
			FileName:    "cover.png",
			ContentType: "image/png",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/presigned", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.StorageKey, "media/"))
		assert.True(t, strings.HasSuffix(resp.StorageKey, ".png"))
		assert.True(t, resp.ExpiresAt.Equal(expiresAt))
	})

	t.Run("readers cannot upload", func(t *testing.T) {
		service, _, _ := newMediaFixture()
		reader := &identity.Actor{UserID: uuid.New(), Role: identity.RoleReader}

		_, err := service.RequestUpload(ctx, reader, RequestUploadRequest{FileName: "a.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("presign failure surfaces as dependency failure", func(t *testing.T) {
		service, _, storage := newMediaFixture()

		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/png", uploadURLExpiry).
			Return("", time.Time{}, errors.New("s3 unreachable"))

		_, err := service.RequestUpload(ctx, writerActor(), RequestUploadRequest{
			FileName:    "a.png",
			ContentType: "image/png",
		})
		assert.ErrorIs(t, err, shared.ErrDependencyFailure)
	})
}

func TestMediaService_RegisterMedia(t *testing.T) {
	ctx := context.Background()
	storageKey := "media/2026/09/" + uuid.NewString() + ".png"

	t.Run("registers metadata for an uploaded object", func(t *testing.T) {
		service, repo, storage := newMediaFixture()
		actor := writerActor()

		storage.On("ObjectExists", ctx, storageKey).Return(true, nil)
		storage.On("PublicURL", storageKey).Return("https://cdn.example.com/" + storageKey)
		repo.On("Create", ctx, mock.MatchedBy(func(media *content.Media) bool {
			return media.StorageKey == storageKey && media.UploadedByID == actor.UserID
		})).Return(nil)

		resp, err := service.RegisterMedia(ctx, actor, RegisterMediaRequest{
			StorageKey: storageKey,
			Type:       "IMAGE",
			AltText:    "Cover art",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/"+storageKey, resp.URL)
		assert.Equal(t, "Cover art", resp.AltText)
	})

	t.Run("rejects keys with no uploaded object", func(t *testing.T) {
		service, _, storage := newMediaFixture()

		storage.On("ObjectExists", ctx, storageKey).Return(false, nil)

		_, err := service.RegisterMedia(ctx, writerActor(), RegisterMediaRequest{
			StorageKey: storageKey,
			Type:       "IMAGE",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects unknown media types", func(t *testing.T) {
		service, _, storage := newMediaFixture()

		storage.On("ObjectExists", ctx, storageKey).Return(true, nil)
		storage.On("PublicURL", storageKey).Return("https://cdn.example.com/" + storageKey)

		_, err := service.RegisterMedia(ctx, writerActor(), RegisterMediaRequest{
			StorageKey: storageKey,
			Type:       "SPREADSHEET",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MEDIA_TYPE", domainErr.Code)
	})
}

func TestMediaService_DeleteMedia(t *testing.T) {
	ctx := context.Background()

	newOwnedMedia := func(t *testing.T, ownerID uuid.UUID) *content.Media {
		t.Helper()
		media, err := content.NewMedia(ownerID, "https://cdn.example.com/x.png", content.MediaTypeImage)
		require.NoError(t, err)
		media.StorageKey = "media/2026/09/x.png"
		return media
	}

	t.Run("uploader deletes metadata and stored object", func(t *testing.T) {
		service, repo, storage := newMediaFixture()
		actor := writerActor()
		media := newOwnedMedia(t, actor.UserID)

		repo.On("FindByID", ctx, media.ID).Return(media, nil)
		repo.On("Delete", ctx, media.ID).Return(nil)
		storage.On("DeleteObject", ctx, media.StorageKey).Return(nil)

		require.NoError(t, service.DeleteMedia(ctx, actor, media.ID))
		storage.AssertExpectations(t)
	})

	t.Run("admin deletes anyone's media", func(t *testing.T) {
		service, repo, storage := newMediaFixture()
		admin := &identity.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
		media := newOwnedMedia(t, uuid.New())

		repo.On("FindByID", ctx, media.ID).Return(media, nil)
		repo.On("Delete", ctx, media.ID).Return(nil)
		storage.On("DeleteObject", ctx, media.StorageKey).Return(nil)

		require.NoError(t, service.DeleteMedia(ctx, admin, media.ID))
	})

	t.Run("other users cannot delete", func(t *testing.T) {
		service, repo, _ := newMediaFixture()
		media := newOwnedMedia(t, uuid.New())

		repo.On("FindByID", ctx, media.ID).Return(media, nil)

		err := service.DeleteMedia(ctx, writerActor(), media.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", ctx, media.ID)
	})

	t.Run("object delete failure does not fail the request", func(t *testing.T) {
		service, repo, storage := newMediaFixture()
		actor := writerActor()
		media := newOwnedMedia(t, actor.UserID)

		repo.On("FindByID", ctx, media.ID).Return(media, nil)
		repo.On("Delete", ctx, media.ID).Return(nil)
		storage.On("DeleteObject", ctx, media.StorageKey).Return(errors.New("s3 unreachable"))

		assert.NoError(t, service.DeleteMedia(ctx, actor, media.ID))
	})
}
