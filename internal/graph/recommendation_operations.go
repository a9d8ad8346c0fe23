package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"social-graph/pkg/errors"
)

// ============================================================================
// Recommendation Operations
// ============================================================================

// RecommendFriends traverses FRIENDS_WITH two hops out from the user and
// returns the distinct friend-of-friend names, excluding the user's direct
// friends and the user themselves. Sorted by name so the output is
// deterministic. Unknown users and users without qualifying candidates both
// produce an empty list, never an error.
func (r *Repository) RecommendFriends(ctx context.Context, user string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $user})-[:FRIENDS_WITH]->(friend:User)-[:FRIENDS_WITH]->(candidate:User)
		WHERE NOT (u)-[:FRIENDS_WITH]->(candidate) AND candidate <> u
		RETURN DISTINCT candidate.name as name
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("recommend friends", err)
	}

	return collectNames(ctx, result)
}

// MutualFriends returns the names of users befriended by both a and b,
// sorted by name.
func (r *Repository) MutualFriends(ctx context.Context, userA, userB string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {name: $userA})-[:FRIENDS_WITH]->(m:User)<-[:FRIENDS_WITH]-(b:User {name: $userB})
		RETURN DISTINCT m.name as name
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userA": userA,
		"userB": userB,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("mutual friends", err)
	}

	return collectNames(ctx, result)
}
