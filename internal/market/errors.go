package market

import (
	"errors"
	"strings"
)

var (
	ErrEmptyField          = errors.New("required field is empty")
	ErrMissingSession      = errors.New("no active session")
	ErrInvalidRole         = errors.New("invalid role")
	ErrWrongRole           = errors.New("operation not allowed for this role")
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrReceiverMismatch    = errors.New("receiver is not the requirement's buyer")
	ErrWorkspaceNotFound   = errors.New("workspace not found")
)

// FieldError lists the required fields that were blank at submit time.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return "empty fields: " + strings.Join(e.Fields, ", ")
}

func (e *FieldError) Unwrap() error { return ErrEmptyField }
