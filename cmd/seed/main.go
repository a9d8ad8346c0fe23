// Seeds a demo social graph: a handful of users, friendships, posts and a
// group, so the recommendation and search endpoints have something to chew on.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"social-graph/internal/graph"
	"social-graph/pkg/config"
	apperrors "social-graph/pkg/errors"
	"social-graph/pkg/logger"
)

func main() {
	wipe := flag.Bool("wipe", false, "Delete all existing nodes before seeding")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	if *wipe {
		log.Info("Wiping existing graph...")
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
			log.Fatal("Failed to wipe graph", zap.Error(err))
		}
		session.Close(ctx)
	}

	repo := graph.NewRepository(driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure graph schema", zap.Error(err))
	}

	if err := seed(ctx, repo); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Seeding complete")
}

func seed(ctx context.Context, repo *graph.Repository) error {
	profiles := []graph.UserProfile{
		{Name: "Ann", Age: intp(29), Location: strp("NYC"), Interests: []string{"chess", "cycling"}},
		{Name: "Bob", Age: intp(34), Location: strp("NYC"), Interests: []string{"golf"}},
		{Name: "Carol", Age: intp(25), Location: strp("LA"), Interests: []string{"chess", "surfing"}},
		{Name: "Dave", Age: intp(41), Location: strp("Chicago"), Interests: []string{"cycling"}},
		{Name: "Erin", Location: strp("NYC"), Interests: []string{"surfing", "golf"}},
	}

	// Registrations target disjoint keys, so they can run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for _, profile := range profiles {
		profile := profile
		g.Go(func() error {
			err := repo.RegisterUser(gctx, profile)
			if apperrors.IsConflict(err) {
				return nil // already seeded
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("register users: %w", err)
	}

	friendships := [][2]string{
		{"Ann", "Bob"},
		{"Bob", "Carol"},
		{"Carol", "Dave"},
		{"Ann", "Erin"},
	}
	for _, pair := range friendships {
		if err := repo.SendFriendRequest(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("send request %s->%s: %w", pair[0], pair[1], err)
		}
		if err := repo.AcceptFriendRequest(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("accept request %s->%s: %w", pair[0], pair[1], err)
		}
	}

	postID, err := repo.CreatePost(ctx, "Ann", "Checkmate in three")
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	if err := repo.LikePostByID(ctx, "Bob", postID); err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	if err := repo.CommentOnPostByID(ctx, "Carol", postID, "Show the board!"); err != nil {
		return fmt.Errorf("comment on post: %w", err)
	}

	if err := repo.CreateGroup(ctx, "chess-club", "Weekly blitz and puzzles"); err != nil && !apperrors.IsConflict(err) {
		return fmt.Errorf("create group: %w", err)
	}
	for _, member := range []string{"Ann", "Carol"} {
		if err := repo.JoinGroup(ctx, member, "chess-club"); err != nil {
			return fmt.Errorf("join group: %w", err)
		}
	}

	return nil
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }
