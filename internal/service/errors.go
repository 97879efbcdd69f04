package service

import (
	"fmt"

	"github.com/pkg/errors"

	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

// Common service errors
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("identifier already exists")
	ErrDependency = errors.New("record store unavailable")
)

// ValidationError reports logically invalid input. For quantity
// reservations it carries the requested and available counts so the
// caller can correct the request.
type ValidationError struct {
	Message   string      `json:"message"`
	Size      models.Size `json:"size,omitempty"`
	Requested int         `json:"requested,omitempty"`
	Available int         `json:"available,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError creates a plain validation error
func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// newQuantityError creates a validation error for an over-drawn or
// missing size breakdown entry
func newQuantityError(size models.Size, requested, available int) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(
			"insufficient quantity for size %s: requested %d, available %d",
			size, requested, available),
		Size:      size,
		Requested: requested,
		Available: available,
	}
}

// fromRepoError maps repository sentinels to service errors
func fromRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrConflict
	default:
		return err
	}
}
