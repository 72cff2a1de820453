package persistence

import (
	"context"
	"testing"

	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{}, &identity.WriterProfile{})
	require.NoError(t, err)

	// Migrations add these in production
	err = db.Exec("CREATE UNIQUE INDEX idx_users_email ON users(email)").Error
	require.NoError(t, err)

	return db
}

func newTestUser(t *testing.T, email string, role identity.Role) *identity.User {
	user, err := identity.NewUser(email, "Test User", "Str0ngPass1", role)
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("creates and finds by ID", func(t *testing.T) {
		user := newTestUser(t, "writer@example.com", identity.RoleWriter)

		err := repo.Create(ctx, user)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "writer@example.com", found.Email)
		assert.Equal(t, identity.RoleWriter, found.Role)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "WRITER@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "writer@example.com", found.Email)
	})

	t.Run("finds by username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "writer")
		require.NoError(t, err)
		assert.Equal(t, "writer@example.com", found.Email)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate email maps to already exists", func(t *testing.T) {
		dup := newTestUser(t, "writer@example.com", identity.RoleReader)

		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, "editor@example.com", identity.RoleEditor)
	require.NoError(t, repo.Create(ctx, user))

	exists, err := repo.ExistsByEmail(ctx, "editor@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, "reader@example.com", identity.RoleReader)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("persists role change", func(t *testing.T) {
		require.NoError(t, user.ChangeRole(identity.RoleWriter))
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleWriter, found.Role)
	})

	t.Run("deletes user", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, user.ID))

		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deleting again returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_FindAll(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	for _, spec := range []struct {
		email string
		role  identity.Role
	}{
		{"a@example.com", identity.RoleAdmin},
		{"b@example.com", identity.RoleWriter},
		{"c@example.com", identity.RoleWriter},
		{"d@example.com", identity.RoleReader},
	} {
		require.NoError(t, repo.Create(ctx, newTestUser(t, spec.email, spec.role)))
	}

	t.Run("filters by role", func(t *testing.T) {
		filter := identity.UserFilter{Role: roleForFilter(identity.RoleWriter), Page: 1, PageSize: 10}
		users, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, users, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := identity.UserFilter{Page: 1, PageSize: 3}
		users, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, users, 3)

		filter.Page = 2
		users, _, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func roleForFilter(role identity.Role) *identity.Role {
	return &role
}

func TestWriterProfileRepository(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormWriterProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	profile, err := identity.NewWriterProfile(userID)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, profile))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)

	require.NoError(t, repo.DeleteByUserID(ctx, userID))

	_, err = repo.FindByUserID(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
