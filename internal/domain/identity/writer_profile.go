package identity

import (
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WriterProfile holds writer-specific data for a user with the WRITER role.
// It is created in the same transaction as the user at sign-up.
type WriterProfile struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Specialty string
	Website   string
}

// NewWriterProfile creates a profile for the given user
func NewWriterProfile(userID uuid.UUID) (*WriterProfile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	return &WriterProfile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}, nil
}
