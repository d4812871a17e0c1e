package usecase

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = &ValidationError{Message: "validation failed"}

// ValidationError reports malformed input. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrInvalidQuoteID      = errors.New("invalid quote id")
	ErrInvalidQuoteStatus  = &ValidationError{Message: "status must be one of pending, reviewed, accepted, rejected"}
	ErrEmptyCommentContent = &ValidationError{Message: "comment content is required"}
	ErrInvalidMentionID    = &ValidationError{Message: "mentions must be valid administrator ids"}
	ErrInvalidCommentID    = errors.New("invalid comment id")
	ErrMissingAuthor       = errors.New("comment author is required")
	ErrQuoteBusy           = errors.New("quote is being modified concurrently, retry later")
)

// Reference roles carried by DanglingReferenceError.
const (
	RoleAuthor  = "author"
	RoleMention = "mention"
)

// DanglingReferenceError describes a comment author or mention whose
// administrator no longer exists. The resolver logs it and degrades the
// comment display instead of failing the read.
type DanglingReferenceError struct {
	QuoteID   string
	CommentID string
	AdminID   string
	Role      string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("quote %s comment %s: %s %s does not resolve to an administrator",
		e.QuoteID, e.CommentID, e.Role, e.AdminID)
}
