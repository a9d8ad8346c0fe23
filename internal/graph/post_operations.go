package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"social-graph/pkg/errors"
)

// ============================================================================
// Post Operations
// ============================================================================

// CreatePost creates a post node and its POSTED_BY edge in one transaction
// and returns the post's generated id. Without an existing author nothing
// is created.
func (r *Repository) CreatePost(ctx context.Context, user, content string) (string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	postID := uuid.NewString()

	query := `
		MATCH (u:User {name: $user})
		CREATE (p:Post {id: $id, content: $content, timestamp: datetime($now)})-[:POSTED_BY]->(u)
		RETURN p.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user":    user,
		"id":      postID,
		"content": content,
		"now":     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", errors.NewGraphQueryFailed("create post", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return "", errors.NewGraphQueryFailed("create post", err)
		}
		return "", errors.NewUserNotFound(user)
	}

	r.logger.Info("Post created",
		zap.String("user", user),
		zap.String("post_id", postID),
	)
	return postID, nil
}

// LikePost merges a LIKES edge from the user to every post whose content
// equals postContent. Liking twice leaves a single edge per post. Content is
// the historical lookup key; duplicate-content posts are indistinguishable
// here, use LikePostByID to target one post.
func (r *Repository) LikePost(ctx context.Context, user, postContent string) error {
	return r.likePost(ctx, user, "p.content = $key", postContent)
}

// LikePostByID merges a LIKES edge to the single post with the given id
func (r *Repository) LikePostByID(ctx context.Context, user, postID string) error {
	return r.likePost(ctx, user, "p.id = $key", postID)
}

func (r *Repository) likePost(ctx context.Context, user, postMatch, key string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $user}), (p:Post)
		WHERE ` + postMatch + `
		MERGE (u)-[:LIKES]->(p)
		RETURN count(p) as matched
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
		"key":  key,
	})
	if err != nil {
		return errors.NewGraphQueryFailed("like post", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("like post", err)
		}
		return errors.NewPostNotFound(key)
	}
	if matched := getIntFromRecord(result.Record(), "matched"); matched == 0 {
		return errors.NewPostNotFound(key)
	}

	r.logger.Info("Post liked", zap.String("user", user))
	return nil
}

// CommentOnPost creates a new COMMENTED_ON edge carrying the comment text.
// Not idempotent: every call adds a distinct comment, on every post whose
// content equals postContent.
func (r *Repository) CommentOnPost(ctx context.Context, user, postContent, text string) error {
	return r.commentOnPost(ctx, user, "p.content = $key", postContent, text)
}

// CommentOnPostByID adds a comment to the single post with the given id
func (r *Repository) CommentOnPostByID(ctx context.Context, user, postID, text string) error {
	return r.commentOnPost(ctx, user, "p.id = $key", postID, text)
}

func (r *Repository) commentOnPost(ctx context.Context, user, postMatch, key, text string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {name: $user}), (p:Post)
		WHERE ` + postMatch + `
		CREATE (u)-[:COMMENTED_ON {text: $text, at: datetime($now)}]->(p)
		RETURN count(p) as matched
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
		"key":  key,
		"text": text,
		"now":  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.NewGraphQueryFailed("comment on post", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return errors.NewGraphQueryFailed("comment on post", err)
		}
		return errors.NewPostNotFound(key)
	}
	if matched := getIntFromRecord(result.Record(), "matched"); matched == 0 {
		return errors.NewPostNotFound(key)
	}

	r.logger.Info("Comment added", zap.String("user", user))
	return nil
}

// GetUserPosts returns a user's posts, newest first
func (r *Repository) GetUserPosts(ctx context.Context, user string) ([]Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post)-[:POSTED_BY]->(u:User {name: $user})
		RETURN p.id as id, p.content as content, p.timestamp as timestamp, u.name as author
		ORDER BY p.timestamp DESC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user": user,
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("get user posts", err)
	}

	posts := []Post{}
	for result.Next(ctx) {
		record := result.Record()
		posts = append(posts, Post{
			ID:        getStringFromRecord(record, "id"),
			Content:   getStringFromRecord(record, "content"),
			Author:    getStringFromRecord(record, "author"),
			Timestamp: getTimeFromRecord(record, "timestamp"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewGraphQueryFailed("get user posts", err)
	}

	return posts, nil
}
