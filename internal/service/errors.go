package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation    = errors.New("validation")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadySeeded = errors.New("catalog not empty")
	ErrStore         = errors.New("store unavailable")
)

// storeErr classifies an error coming back from the repository layer.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case isClassified(err):
		return err
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
}

func isClassified(err error) bool {
	for _, s := range []error{ErrValidation, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict, ErrAlreadySeeded, ErrStore} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
