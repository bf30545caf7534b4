package models

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidStateError reports a rejected tank lifecycle transition.
type InvalidStateError struct {
	Entity   string `json:"entity"`
	ID       string `json:"id"`
	Current  string `json:"current"`
	Required string `json:"required"`
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s, operation requires %s", e.Entity, e.ID, e.Current, e.Required)
}

// InsufficientStockError reports a reserve that would drive stock negative.
type InsufficientStockError struct {
	ItemID    string  `json:"itemId"`
	Available float64 `json:"available"`
	Requested float64 `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock on %s: available %.3f, requested %.3f", e.ItemID, e.Available, e.Requested)
}

// ValidationError reports malformed input, detected before any entity lookup.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransientStoreError wraps a persistence failure that rolled the whole
// mutation back. Callers may retry safely.
type TransientStoreError struct {
	Op    string
	Cause error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Cause)
}

func (e *TransientStoreError) Unwrap() error { return e.Cause }

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
