package identity

import (
	"testing"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with derived username", func(t *testing.T) {
		user, err := NewUser("Jane.Doe@Example.com", "Jane Doe", "Secret123", RoleWriter)

		assert.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", user.Email)
		assert.Equal(t, "jane.doe", user.Username)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, RoleWriter, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Secret123", user.PasswordHash)
		assert.Nil(t, user.EmailVerifiedAt)
		assert.Len(t, user.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeUserRegistered, user.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Jane", "Secret123", RoleReader)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "Jane", "Secret123", Role("SUPERUSER"))

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ROLE", domainErr.Code)
	})
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Secret123", false},
		{"too short", "Ab1", true},
		{"missing uppercase", "secret123", true},
		{"missing lowercase", "SECRET123", true},
		{"missing digit", "SecretPass", true},
		{"empty", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("jane@example.com", "Jane", "Secret123", RoleReader)
	assert.NoError(t, err)

	assert.True(t, user.VerifyPassword("Secret123"))
	assert.False(t, user.VerifyPassword("Wrong456"))
}

func TestUser_ChangeRole(t *testing.T) {
	t.Run("changes role and emits event", func(t *testing.T) {
		user, _ := NewUser("jane@example.com", "Jane", "Secret123", RoleReader)
		user.ClearDomainEvents()

		err := user.ChangeRole(RoleEditor)

		assert.NoError(t, err)
		assert.Equal(t, RoleEditor, user.Role)
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		user, _ := NewUser("jane@example.com", "Jane", "Secret123", RoleReader)
		user.ClearDomainEvents()
		version := user.GetVersion()

		err := user.ChangeRole(RoleReader)

		assert.NoError(t, err)
		assert.Equal(t, version, user.GetVersion())
		assert.Empty(t, user.GetDomainEvents())
	})
}

func TestUser_MarkEmailVerified(t *testing.T) {
	user, _ := NewUser("jane@example.com", "Jane", "Secret123", RoleReader)

	user.MarkEmailVerified()
	assert.NotNil(t, user.EmailVerifiedAt)

	first := *user.EmailVerifiedAt
	user.MarkEmailVerified()
	assert.Equal(t, first, *user.EmailVerifiedAt)
}

func TestSignUpRole(t *testing.T) {
	assert.True(t, SignUpRole(RoleWriter))
	assert.True(t, SignUpRole(RoleReader))
	assert.False(t, SignUpRole(RoleAdmin))
	assert.False(t, SignUpRole(RoleEditor))
}
