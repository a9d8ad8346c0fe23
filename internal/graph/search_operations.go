package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"social-graph/pkg/errors"
)

// ============================================================================
// Search Operations
// ============================================================================

// SearchUsers returns the users matching every supplied criterion: name is
// a substring match, location an exact match, interests an any-of
// intersection. A search with no criteria is rejected; an unbounded scan is
// never issued.
func (r *Repository) SearchUsers(ctx context.Context, criteria SearchCriteria) ([]User, error) {
	if criteria.Empty() {
		return nil, errors.ErrEmptySearch
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	spec := newPredicateSpec()
	if criteria.Name != "" {
		spec.add("u.name CONTAINS $name", "name", criteria.Name)
	}
	if criteria.Location != "" {
		spec.add("u.location = $location", "location", criteria.Location)
	}
	if len(criteria.Interests) > 0 {
		spec.add("ANY(interest IN u.interests WHERE interest IN $interests)", "interests", criteria.Interests)
	}

	query := `
		MATCH (u:User)
		` + spec.whereClause() + `
		RETURN u.name as name, u.age as age, u.location as location,
		       u.interests as interests, u.created_at as created_at
		ORDER BY name
	`

	result, err := session.Run(ctx, query, spec.params)
	if err != nil {
		return nil, errors.NewGraphQueryFailed("search users", err)
	}

	users := []User{}
	for result.Next(ctx) {
		users = append(users, *userFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewGraphQueryFailed("search users", err)
	}

	return users, nil
}
