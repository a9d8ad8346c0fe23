package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_Format(t *testing.T) {
	err := NewBaseError(ErrorTypeGraph, "query failed", nil)
	assert.Equal(t, "[graph] query failed", err.Error())

	wrapped := NewBaseError(ErrorTypeGraph, "query failed", stderrors.New("boom"))
	assert.Equal(t, "[graph] query failed: boom", wrapped.Error())
	assert.EqualError(t, stderrors.Unwrap(wrapped), "boom")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewUserNotFound("Ann")))
	assert.True(t, IsNotFound(NewPostNotFound("hello")))
	assert.True(t, IsNotFound(NewGroupNotFound("chess-club")))
	assert.True(t, IsNotFound(NewRequestNotFound("Ann", "Bob")))
	assert.True(t, IsNotFound(NewFriendshipNotFound("Ann", "Bob")))

	assert.False(t, IsNotFound(NewUserAlreadyExists("Ann", nil)))
	assert.False(t, IsNotFound(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(NewUserAlreadyExists("Ann", nil)))
	assert.True(t, IsConflict(NewGroupAlreadyExists("chess-club", nil)))
	assert.False(t, IsConflict(NewUserNotFound("Ann")))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrEmptyUpdate))
	assert.True(t, IsValidation(ErrEmptySearch))
	assert.True(t, IsValidation(NewSelfFriendship("Ann")))
	assert.False(t, IsValidation(NewGraphQueryFailed("op", stderrors.New("boom"))))
}

func TestIsErrorType_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NewUserNotFound("Ann"))

	assert.True(t, IsNotFound(err))
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
	assert.False(t, IsErrorType(err, ErrorTypeGraph))
}

func TestTypedErrors_CarryFields(t *testing.T) {
	var notFound *ErrUserNotFound
	err := fmt.Errorf("wrapped: %w", NewUserNotFound("Ann"))
	if assert.True(t, stderrors.As(err, &notFound)) {
		assert.Equal(t, "Ann", notFound.Name)
	}

	req := NewRequestNotFound("Ann", "Bob")
	assert.Equal(t, "Ann", req.From)
	assert.Equal(t, "Bob", req.To)
}
