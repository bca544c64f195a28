package apperr

// Domain errors surfaced by the service layer.
var (
	ErrDuplicateUsername = AlreadyExists("username is already taken")
	ErrDuplicateEmail    = AlreadyExists("email is already registered")
	ErrInvalidPassword   = InvalidArg("password must be at least 6 characters")
	ErrUnknownAuthor     = NotFound("author does not exist")
	ErrEmptyText         = InvalidArg("message text cannot be empty")
	ErrOversizedText     = InvalidArg("message text exceeds 140 characters")
	ErrSelfFollow        = InvalidArg("cannot follow yourself")
	ErrUserNotFound      = NotFound("user not found")
	ErrMessageNotFound   = NotFound("message not found")
	ErrNotAuthorized     = Forbidden("not allowed to perform this action")
	ErrWrongPassword     = Unauthenticated("invalid credentials")
)

// ErrStoreUnavailable wraps a backing-store failure. Writes are never
// retried automatically; the caller is told that no state changed.
func ErrStoreUnavailable(cause error) error {
	return Wrap(CodeUnavailable, "store unavailable", cause)
}
