// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/models"
)

// translateError maps storage errors onto the model error kinds. Errors
// raised by model hooks pass through unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", models.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	default:
		return err
	}
}

// orderConflict reports a unique index violation on an order column as the
// duplicate order it stands for. Two writers that race for the same number
// both pass the save hook, and the slower one is stopped by the index. check
// must run outside the failed transaction so that it sees the winning row.
func orderConflict(db *gorm.DB, err error, check func(*gorm.DB) error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if cerr := check(db); errors.Is(cerr, models.ErrValidation) {
		return cerr
	}
	return err
}

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, models.ErrNotFound)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
