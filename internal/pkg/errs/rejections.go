package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for command rejections. Every rejection returned to a caller
// unwraps to exactly one of these, so callers can classify with errors.Is and
// map the rejection to a stable reason code via ReasonCode.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
)

// ReasonCode maps a rejection to its stable, caller-displayable reason code.
// Returns an empty string for errors outside the rejection taxonomy.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrTokenInvalid):
		return "TOKEN_INVALID"
	case errors.Is(err, ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED"
	case errors.Is(err, ErrObjectNotFound):
		return "NOT_FOUND"
	default:
		return ""
	}
}

// UnauthorizedError indicates that the acting party may not issue the command
// against the target order. Denials are terminal for the command.
type UnauthorizedError struct {
	Role    string
	ActorID string
	Reason  string
}

// NewUnauthorizedError creates an UnauthorizedError describing the denial.
func NewUnauthorizedError(role, actorID, reason string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, ActorID: actorID, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrUnauthorized, e.Role, e.ActorID, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidTransitionError indicates that a command is not legal from the
// order's or entity's current state.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted move.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError indicates the command lost a race to another command already
// committed on the same order. The caller may retry; the core never does.
type ConflictError struct {
	Resource string
	Detail   string
}

// NewConflictError creates a ConflictError for the contested resource.
func NewConflictError(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConflict, e.Resource, e.Detail)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// TokenInvalidError indicates a verification token that is unknown, bound to
// a different order, or already consumed. The attempt has no effect on funds.
type TokenInvalidError struct {
	Kind string
}

// NewTokenInvalidError creates a TokenInvalidError for the given token kind.
func NewTokenInvalidError(kind string) *TokenInvalidError {
	return &TokenInvalidError{Kind: kind}
}

func (e *TokenInvalidError) Error() string {
	return fmt.Sprintf("%s: %s token rejected", ErrTokenInvalid, e.Kind)
}

func (e *TokenInvalidError) Unwrap() error {
	return ErrTokenInvalid
}

// CapacityExceededError indicates a requested volume exceeding the order's
// remaining volume.
type CapacityExceededError struct {
	Requested string
	Available string
}

// NewCapacityExceededError creates a CapacityExceededError with both quantities.
func NewCapacityExceededError(requested, available string) *CapacityExceededError {
	return &CapacityExceededError{Requested: requested, Available: available}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: requested %s exceeds available %s", ErrCapacityExceeded, e.Requested, e.Available)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
