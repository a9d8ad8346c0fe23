package graph

import (
	"context"
	stderrors "errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"social-graph/pkg/errors"
	"social-graph/pkg/logger"
)

// Repository handles all Neo4j database operations. Every public operation
// executes as one auto-commit transaction; multi-edge mutations such as
// AcceptFriendRequest apply entirely or not at all.
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureSchema creates the uniqueness constraints the data model relies on.
// Idempotent; safe to run at every startup.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT user_name_unique IF NOT EXISTS FOR (u:User) REQUIRE u.name IS UNIQUE",
		"CREATE CONSTRAINT group_name_unique IF NOT EXISTS FOR (g:Group) REQUIRE g.name IS UNIQUE",
		"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE",
	}

	for _, stmt := range constraints {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return errors.NewGraphQueryFailed("ensure schema", err)
		}
	}

	r.logger.Info("Graph schema constraints ensured")
	return nil
}

// isConstraintViolation reports whether err is a uniqueness constraint failure
// raised by the store, as opposed to a transaction or connectivity error.
func isConstraintViolation(err error) bool {
	var neo4jErr *neo4j.Neo4jError
	if stderrors.As(err, &neo4jErr) {
		return neo4jErr.Code == "Neo.ClientError.Schema.ConstraintValidationFailed"
	}
	return false
}
