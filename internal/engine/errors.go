package engine

import (
	"fmt"

	"github.com/emberfell/mud/internal/auth"
)

// UserError represents an error that should be displayed to the player.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a player-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// NewUserErrorf creates a player-facing error from a format string.
func NewUserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError is returned when a command requires a permission the
// actor's role does not hold. The message names the missing permission.
type ForbiddenError struct {
	Permission auth.Permission
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Insufficient permissions. Required: %s", e.Permission)
}
