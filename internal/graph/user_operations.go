package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"social-graph/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// RegisterUser creates a new user node. The name is enforced unique by the
// schema constraint; registering a taken name returns a conflict error.
func (r *Repository) RegisterUser(ctx context.Context, profile UserProfile) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	spec := newUpdateSpec()
	if profile.Age != nil {
		spec.set("u.age", "age", *profile.Age)
	}
	if profile.Location != nil {
		spec.set("u.location", "location", *profile.Location)
	}
	if profile.Interests != nil {
		spec.set("u.interests", "interests", profile.Interests)
	}

	query := "CREATE (u:User {name: $name, created_at: datetime($now)}) "
	if !spec.empty() {
		query += spec.setClause() + " "
	}
	query += "RETURN u.name as name"

	params := spec.params
	params["name"] = profile.Name
	params["now"] = time.Now().UTC().Format(time.RFC3339)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		if isConstraintViolation(err) {
			return errors.NewUserAlreadyExists(profile.Name, err)
		}
		return errors.NewGraphQueryFailed("register user", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		if isConstraintViolation(err) {
			return errors.NewUserAlreadyExists(profile.Name, err)
		}
		return errors.NewGraphQueryFailed("register user", err)
	}

	r.logger.Info("User registered", zap.String("name", profile.Name))
	return nil
}

// UpdateUser applies a partial update to an existing user. Only supplied
// fields change; an update with no fields is rejected before the store.
func (r *Repository) UpdateUser(ctx context.Context, name string, update UserUpdate) error {
	if update.Empty() {
		return errors.ErrEmptyUpdate
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	spec := newUpdateSpec()
	if update.Age != nil {
		spec.set("u.age", "age", *update.Age)
	}
	if update.Location != nil {
		spec.set("u.location", "location", *update.Location)
	}
	if update.Interests != nil {
		spec.set("u.interests", "interests", update.Interests)
	}

	query := "MATCH (u:User {name: $name}) " + spec.setClause() + " RETURN u.name as name"
	params := spec.params
	params["name"] = name

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return errors.NewGraphQueryFailed("update user", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("update user", err)
		}
		return errors.NewUserNotFound(name)
	}

	r.logger.Info("User updated", zap.String("name", name))
	return nil
}

// GetUser retrieves a single user by name
func (r *Repository) GetUser(ctx context.Context, name string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $name})
		RETURN u.name as name, u.age as age, u.location as location,
		       u.interests as interests, u.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("get user", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, errors.NewGraphQueryFailed("get user", err)
		}
		return nil, errors.NewUserNotFound(name)
	}

	return userFromRecord(result.Record()), nil
}

func userFromRecord(record *neo4j.Record) *User {
	return &User{
		Name:      getStringFromRecord(record, "name"),
		Age:       getIntFromRecord(record, "age"),
		Location:  getStringFromRecord(record, "location"),
		Interests: getStringSliceFromRecord(record, "interests"),
		CreatedAt: getTimeFromRecord(record, "created_at"),
	}
}
