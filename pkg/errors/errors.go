package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound represents a referenced identity that does not exist.
	// Zero rows affected at the store; a normal business outcome callers branch on.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict represents a uniqueness violation (duplicate identity)
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeValidation represents structurally invalid input, rejected before the store
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeGraph represents graph database failures (transaction/connectivity)
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Not-found errors

// ErrUserNotFound is returned when a user name matches no node
type ErrUserNotFound struct {
	*BaseError
	Name string
}

func NewUserNotFound(name string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("user not found: %s", name), nil),
		Name:      name,
	}
}

// ErrPostNotFound is returned when no post matches the given content or id
type ErrPostNotFound struct {
	*BaseError
	Key string
}

func NewPostNotFound(key string) *ErrPostNotFound {
	return &ErrPostNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("post not found: %s", key), nil),
		Key:       key,
	}
}

// ErrGroupNotFound is returned when a group name matches no node
type ErrGroupNotFound struct {
	*BaseError
	Name string
}

func NewGroupNotFound(name string) *ErrGroupNotFound {
	return &ErrGroupNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("group not found: %s", name), nil),
		Name:      name,
	}
}

// ErrRequestNotFound is returned when no pending friend request exists from->to
type ErrRequestNotFound struct {
	*BaseError
	From string
	To   string
}

func NewRequestNotFound(from, to string) *ErrRequestNotFound {
	return &ErrRequestNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("no pending friend request from %s to %s", from, to), nil),
		From:      from,
		To:        to,
	}
}

// ErrFriendshipNotFound is returned when no friendship exists between the pair
type ErrFriendshipNotFound struct {
	*BaseError
	User1 string
	User2 string
}

func NewFriendshipNotFound(user1, user2 string) *ErrFriendshipNotFound {
	return &ErrFriendshipNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("no friendship between %s and %s", user1, user2), nil),
		User1:     user1,
		User2:     user2,
	}
}

// Conflict errors

// ErrUserAlreadyExists is returned when registering a name that is already taken
type ErrUserAlreadyExists struct {
	*BaseError
	Name string
}

func NewUserAlreadyExists(name string, err error) *ErrUserAlreadyExists {
	return &ErrUserAlreadyExists{
		BaseError: NewBaseError(ErrorTypeConflict, fmt.Sprintf("user already exists: %s", name), err),
		Name:      name,
	}
}

// ErrGroupAlreadyExists is returned when creating a group whose name is taken
type ErrGroupAlreadyExists struct {
	*BaseError
	Name string
}

func NewGroupAlreadyExists(name string, err error) *ErrGroupAlreadyExists {
	return &ErrGroupAlreadyExists{
		BaseError: NewBaseError(ErrorTypeConflict, fmt.Sprintf("group already exists: %s", name), err),
		Name:      name,
	}
}

// Validation errors

// ErrEmptyUpdate is returned when an update supplies no fields to change
var ErrEmptyUpdate = NewBaseError(ErrorTypeValidation, "update contains no fields", nil)

// ErrEmptySearch is returned when a search supplies no criteria
var ErrEmptySearch = NewBaseError(ErrorTypeValidation, "search requires at least one criterion", nil)

// ErrSelfFriendship is returned when a friend request targets its own sender
type ErrSelfFriendship struct {
	*BaseError
	Name string
}

func NewSelfFriendship(name string) *ErrSelfFriendship {
	return &ErrSelfFriendship{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("user cannot befriend themselves: %s", name), nil),
		Name:      name,
	}
}

// Graph errors

// ErrGraphConnectionFailed is returned when the Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Helper functions

// typed is implemented by every error embedding a BaseError, so that
// classification survives fmt.Errorf %w wrapping.
type typed interface {
	errorType() ErrorType
}

func (e *BaseError) errorType() ErrorType {
	return e.Type
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var t typed
	if errors.As(err, &t) {
		return t.errorType() == errType
	}
	return false
}

// IsNotFound reports whether the error is a not-found outcome
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsConflict reports whether the error is a uniqueness conflict
func IsConflict(err error) bool {
	return IsErrorType(err, ErrorTypeConflict)
}

// IsValidation reports whether the error is a request validation failure
func IsValidation(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}
