package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors returned by the store. Match them with errors.Is.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrForeignKey         = errors.New("referenced record does not exist")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// classify maps driver and GORM errors onto the store taxonomy. Errors that
// already carry a store sentinel keep it.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrNotFound, ErrDuplicateName, ErrForeignKey, ErrValidation, ErrStorageUnavailable} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicateName)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrForeignKey)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%s: %w", op, invalid("amt_claimed", "must not be negative"))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
	}
}
