package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"social-graph/pkg/errors"
)

// Validation failures are rejected before any session is opened, so these
// run against a repository with no driver.

func TestUpdateUser_EmptyUpdateRejected(t *testing.T) {
	repo := NewRepository(nil)

	err := repo.UpdateUser(context.Background(), "Ann", UserUpdate{})

	assert.ErrorIs(t, err, errors.ErrEmptyUpdate)
	assert.True(t, errors.IsValidation(err))
}

func TestSearchUsers_EmptyCriteriaRejected(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.SearchUsers(context.Background(), SearchCriteria{})

	assert.ErrorIs(t, err, errors.ErrEmptySearch)
	assert.True(t, errors.IsValidation(err))
}

func TestSendFriendRequest_SelfRejected(t *testing.T) {
	repo := NewRepository(nil)

	err := repo.SendFriendRequest(context.Background(), "Ann", "Ann")

	assert.True(t, errors.IsValidation(err))
}

func TestAcceptFriendRequest_SelfRejected(t *testing.T) {
	repo := NewRepository(nil)

	err := repo.AcceptFriendRequest(context.Background(), "Ann", "Ann")

	assert.True(t, errors.IsValidation(err))
}

func TestUserUpdate_Empty(t *testing.T) {
	age := 30
	location := "LA"

	assert.True(t, UserUpdate{}.Empty())
	assert.False(t, UserUpdate{Age: &age}.Empty())
	assert.False(t, UserUpdate{Location: &location}.Empty())
	assert.False(t, UserUpdate{Interests: []string{}}.Empty())
}

func TestSearchCriteria_Empty(t *testing.T) {
	assert.True(t, SearchCriteria{}.Empty())
	assert.False(t, SearchCriteria{Name: "An"}.Empty())
	assert.False(t, SearchCriteria{Location: "NYC"}.Empty())
	assert.False(t, SearchCriteria{Interests: []string{"chess"}}.Empty())
}
