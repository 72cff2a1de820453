package persistence

import (
	"errors"

	"github.com/newsroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm errors to domain errors. Requires
// TranslateError on the gorm config so driver duplicate-key and
// foreign-key violations surface as gorm sentinel errors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInvalidInput
	default:
		return err
	}
}
