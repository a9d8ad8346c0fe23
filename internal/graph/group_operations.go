package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"social-graph/pkg/errors"
)

// ============================================================================
// Group Operations
// ============================================================================

// CreateGroup creates a group node. Group names are unique; creating a
// taken name returns a conflict error.
func (r *Repository) CreateGroup(ctx context.Context, name, description string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		CREATE (g:Group {name: $name, description: $description})
		RETURN g.name as name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name":        name,
		"description": description,
	})
	if err != nil {
		if isConstraintViolation(err) {
			return errors.NewGroupAlreadyExists(name, err)
		}
		return errors.NewGraphQueryFailed("create group", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		if isConstraintViolation(err) {
			return errors.NewGroupAlreadyExists(name, err)
		}
		return errors.NewGraphQueryFailed("create group", err)
	}

	r.logger.Info("Group created", zap.String("name", name))
	return nil
}

// JoinGroup merges a JOIN edge with a since date. Idempotent: joining twice
// leaves one membership edge with the original date.
func (r *Repository) JoinGroup(ctx context.Context, user, groupName string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $user}), (g:Group {name: $groupName})
		MERGE (u)-[j:JOIN]->(g)
		ON CREATE SET j.since = date($since)
		RETURN g.name as name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user":      user,
		"groupName": groupName,
		"since":     time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return errors.NewGraphQueryFailed("join group", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("join group", err)
		}
		return errors.NewGroupNotFound(groupName)
	}

	r.logger.Info("User joined group",
		zap.String("user", user),
		zap.String("group", groupName),
	)
	return nil
}

// GroupMembers returns the member names of a group, sorted by name
func (r *Repository) GroupMembers(ctx context.Context, groupName string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)-[:JOIN]->(g:Group {name: $groupName})
		RETURN u.name as name
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"groupName": groupName,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("group members", err)
	}

	return collectNames(ctx, result)
}
