package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"social-graph/pkg/errors"
)

// ============================================================================
// Friend Request / Friendship Operations
// ============================================================================

// SendFriendRequest merges a pending OUTGOING_REQUEST edge from->to.
// Idempotent: re-sending leaves exactly one edge. Both users must exist.
func (r *Repository) SendFriendRequest(ctx context.Context, from, to string) error {
	if from == to {
		return errors.NewSelfFriendship(from)
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (from:User {name: $from}), (to:User {name: $to})
		MERGE (from)-[req:OUTGOING_REQUEST]->(to)
		RETURN from.name as from
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return errors.NewGraphQueryFailed("send friend request", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("send friend request", err)
		}
		// zero rows matched: one or both users are missing
		return errors.NewUserNotFound(from + "/" + to)
	}

	r.logger.Info("Friend request sent",
		zap.String("from", from),
		zap.String("to", to),
	)
	return nil
}

// AcceptFriendRequest resolves a pending request into a symmetric friendship.
// Both FRIENDS_WITH edges carry the same since date and are created in the
// same transaction that deletes the request edge; without a matching pending
// request nothing is created.
func (r *Repository) AcceptFriendRequest(ctx context.Context, from, to string) error {
	if from == to {
		return errors.NewSelfFriendship(from)
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (from:User {name: $from})-[req:OUTGOING_REQUEST]->(to:User {name: $to})
		CREATE (from)-[:FRIENDS_WITH {since: date($since)}]->(to)
		CREATE (to)-[:FRIENDS_WITH {since: date($since)}]->(from)
		DELETE req
		RETURN from.name as from
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"from":  from,
		"to":    to,
		"since": time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return errors.NewGraphQueryFailed("accept friend request", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("accept friend request", err)
		}
		return errors.NewRequestNotFound(from, to)
	}

	r.logger.Info("Friend request accepted",
		zap.String("from", from),
		zap.String("to", to),
	)
	return nil
}

// RemoveFriend deletes the FRIENDS_WITH edges between the pair in both
// directions, keeping the symmetry invariant intact.
func (r *Repository) RemoveFriend(ctx context.Context, user1, user2 string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u1:User {name: $user1})-[f:FRIENDS_WITH]-(u2:User {name: $user2})
		DELETE f
		RETURN count(f) as removed
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user1": user1,
		"user2": user2,
	})
	if err != nil {
		return errors.NewGraphQueryFailed("remove friend", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("remove friend", err)
		}
		return errors.NewFriendshipNotFound(user1, user2)
	}
	if removed := getIntFromRecord(result.Record(), "removed"); removed == 0 {
		return errors.NewFriendshipNotFound(user1, user2)
	}

	r.logger.Info("Friendship removed",
		zap.String("user1", user1),
		zap.String("user2", user2),
	)
	return nil
}

// ListFriends returns the names of a user's direct friends, sorted by name.
// Unknown users produce an empty list, not an error.
func (r *Repository) ListFriends(ctx context.Context, user string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $user})-[:FRIENDS_WITH]->(f:User)
		RETURN f.name as name
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("list friends", err)
	}

	return collectNames(ctx, result)
}

// PendingRequests returns the names of users with an open request towards
// the given user, sorted by name.
func (r *Repository) PendingRequests(ctx context.Context, user string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (from:User)-[:OUTGOING_REQUEST]->(u:User {name: $user})
		RETURN from.name as name
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("pending requests", err)
	}

	return collectNames(ctx, result)
}

// collectNames drains a result whose rows each carry a "name" column
func collectNames(ctx context.Context, result neo4j.ResultWithContext) ([]string, error) {
	names := []string{}
	for result.Next(ctx) {
		names = append(names, getStringFromRecord(result.Record(), "name"))
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewGraphQueryFailed("collect names", err)
	}
	return names, nil
}
