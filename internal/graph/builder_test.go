package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateSpec_SetClause(t *testing.T) {
	spec := newUpdateSpec()
	spec.set("u.age", "age", 30)
	spec.set("u.location", "location", "LA")

	assert.False(t, spec.empty())
	assert.Equal(t, "SET u.age = $age, u.location = $location", spec.setClause())
	assert.Equal(t, map[string]any{"age": 30, "location": "LA"}, spec.params)
}

func TestUpdateSpec_Empty(t *testing.T) {
	spec := newUpdateSpec()
	assert.True(t, spec.empty())

	spec.set("u.interests", "interests", []string{"chess"})
	assert.False(t, spec.empty())
	assert.Equal(t, "SET u.interests = $interests", spec.setClause())
}

func TestPredicateSpec_WhereClause(t *testing.T) {
	spec := newPredicateSpec()
	spec.add("u.name CONTAINS $name", "name", "An")
	spec.add("u.location = $location", "location", "NYC")

	assert.Equal(t, "WHERE u.name CONTAINS $name AND u.location = $location", spec.whereClause())
	assert.Equal(t, map[string]any{"name": "An", "location": "NYC"}, spec.params)
}

func TestPredicateSpec_SingleCondition(t *testing.T) {
	spec := newPredicateSpec()
	assert.True(t, spec.empty())

	spec.add("u.location = $location", "location", "NYC")
	assert.False(t, spec.empty())
	assert.Equal(t, "WHERE u.location = $location", spec.whereClause())
}
