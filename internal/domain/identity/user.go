package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the single role a user holds
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleWriter Role = "WRITER"
	RoleReader Role = "READER"
)

// Password cost for bcrypt
const bcryptCost = 12

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleWriter, RoleReader:
		return true
	}
	return false
}

// SignUpRole reports whether r may be chosen at self-service sign-up.
// ADMIN and EDITOR are assigned by administrators only.
func SignUpRole(r Role) bool {
	return r == RoleWriter || r == RoleReader
}

// User represents an account on the platform
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Email           string
	Username        string
	Name            string
	Role            Role
	Bio             string
	AvatarURL       string
	PasswordHash    string
	EmailVerifiedAt *time.Time
}

// NewUser creates a new user with required fields.
// The username is derived from the email local part.
func NewUser(email, name, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !ValidRole(role) {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Username:          UsernameFromEmail(email),
		Name:              strings.TrimSpace(name),
		Role:              role,
		PasswordHash:      passwordHash,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// UsernameFromEmail derives the username from the email local part
func UsernameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password
func (u *User) SetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// UpdateName changes the user's display name
func (u *User) UpdateName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetBio sets the user's bio
func (u *User) SetBio(bio string) error {
	if len(bio) > 1000 {
		return shared.NewDomainError("INVALID_BIO", "Bio cannot exceed 1000 characters")
	}

	u.Bio = strings.TrimSpace(bio)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetAvatarURL sets the user's avatar URL
func (u *User) SetAvatarURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}

	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangeRole changes the user's role. Only administrators may call this;
// the caller is responsible for the authorization check.
func (u *User) ChangeRole(role Role) error {
	if !ValidRole(role) {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if u.Role == role {
		return nil
	}

	oldRole := u.Role
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserRoleChangedEvent(u, oldRole, role))

	return nil
}

// MarkEmailVerified records that the user's email has been verified
func (u *User) MarkEmailVerified() {
	if u.EmailVerifiedAt != nil {
		return
	}
	now := time.Now()
	u.EmailVerifiedAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// IsWriter returns true if the user can author posts
func (u *User) IsWriter() bool {
	return u.Role == RoleWriter || u.Role == RoleEditor || u.Role == RoleAdmin
}

// Validation functions

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

// ValidatePassword enforces the platform password policy:
// at least 8 characters with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasUpper || !hasLower || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain an uppercase letter, a lowercase letter and a number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
