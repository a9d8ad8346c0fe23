package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"social-graph/internal/cache"
	"social-graph/internal/graph"
	"social-graph/pkg/config"
	apperrors "social-graph/pkg/errors"
	"social-graph/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting social graph API server...")

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

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure graph schema", zap.Error(err))
	}

	// Optional Redis-backed recommendation cache
	var recCache *cache.RecommendationCache
	if cfg.CacheEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		recCache = cache.New(redisClient, cfg.RecommendationTTL)
		log.Info("Recommendation cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerRoutes(router, repo, recCache, log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func registerRoutes(router *gin.Engine, repo *graph.Repository, recCache *cache.RecommendationCache, log *zap.Logger) {
	router.POST("/register", func(c *gin.Context) {
		var req struct {
			Name      string   `json:"name" binding:"required"`
			Age       *int     `json:"age"`
			Location  *string  `json:"location"`
			Interests []string `json:"interests"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := repo.RegisterUser(c.Request.Context(), graph.UserProfile{
			Name:      req.Name,
			Age:       req.Age,
			Location:  req.Location,
			Interests: req.Interests,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	})

	router.PUT("/update", func(c *gin.Context) {
		var req struct {
			Name      string   `json:"name" binding:"required"`
			Age       *int     `json:"age"`
			Location  *string  `json:"location"`
			Interests []string `json:"interests"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := repo.UpdateUser(c.Request.Context(), req.Name, graph.UserUpdate{
			Age:       req.Age,
			Location:  req.Location,
			Interests: req.Interests,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User info updated successfully"})
	})

	router.POST("/send_friend_request", func(c *gin.Context) {
		var req struct {
			FromUser string `json:"from_user" binding:"required"`
			ToUser   string `json:"to_user" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repo.SendFriendRequest(c.Request.Context(), req.FromUser, req.ToUser); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
	})

	router.POST("/accept_friend_request", func(c *gin.Context) {
		var req struct {
			FromUser string `json:"from_user" binding:"required"`
			ToUser   string `json:"to_user" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if err := repo.AcceptFriendRequest(ctx, req.FromUser, req.ToUser); err != nil {
			respondError(c, log, err)
			return
		}
		if recCache != nil {
			recCache.Invalidate(ctx, req.FromUser, req.ToUser)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
	})

	router.DELETE("/remove_friend", func(c *gin.Context) {
		var req struct {
			User1 string `json:"user1" binding:"required"`
			User2 string `json:"user2" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if err := repo.RemoveFriend(ctx, req.User1, req.User2); err != nil {
			respondError(c, log, err)
			return
		}
		if recCache != nil {
			recCache.Invalidate(ctx, req.User1, req.User2)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
	})

	router.POST("/create_post", func(c *gin.Context) {
		var req struct {
			User    string `json:"user" binding:"required"`
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		postID, err := repo.CreatePost(c.Request.Context(), req.User, req.Content)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Post created", "post_id": postID})
	})

	router.POST("/like_post", func(c *gin.Context) {
		var req struct {
			User        string `json:"user" binding:"required"`
			PostContent string `json:"post_content"`
			PostID      string `json:"post_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		var err error
		switch {
		case req.PostID != "":
			err = repo.LikePostByID(ctx, req.User, req.PostID)
		case req.PostContent != "":
			err = repo.LikePost(ctx, req.User, req.PostContent)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "post_id or post_content is required"})
			return
		}
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
	})

	router.POST("/comment_on_post", func(c *gin.Context) {
		var req struct {
			User        string `json:"user" binding:"required"`
			PostContent string `json:"post_content"`
			PostID      string `json:"post_id"`
			CommentText string `json:"comment_text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		var err error
		switch {
		case req.PostID != "":
			err = repo.CommentOnPostByID(ctx, req.User, req.PostID, req.CommentText)
		case req.PostContent != "":
			err = repo.CommentOnPost(ctx, req.User, req.PostContent, req.CommentText)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "post_id or post_content is required"})
			return
		}
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment added"})
	})

	router.POST("/create_group", func(c *gin.Context) {
		var req struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repo.CreateGroup(c.Request.Context(), req.Name, req.Description); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Group created"})
	})

	router.POST("/join_group", func(c *gin.Context) {
		var req struct {
			User      string `json:"user" binding:"required"`
			GroupName string `json:"group_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repo.JoinGroup(c.Request.Context(), req.User, req.GroupName); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined group"})
	})

	router.GET("/recommend_friends", func(c *gin.Context) {
		user := c.Query("user")
		if user == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user is required"})
			return
		}

		ctx := c.Request.Context()
		if recCache != nil {
			if names, ok := recCache.Get(ctx, user); ok {
				c.JSON(http.StatusOK, gin.H{"recommended_friends": names})
				return
			}
		}

		names, err := repo.RecommendFriends(ctx, user)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if recCache != nil {
			recCache.Set(ctx, user, names)
		}
		c.JSON(http.StatusOK, gin.H{"recommended_friends": names})
	})

	router.GET("/search_users", func(c *gin.Context) {
		criteria := graph.SearchCriteria{
			Name:      c.Query("name"),
			Location:  c.Query("location"),
			Interests: c.QueryArray("interests"),
		}

		users, err := repo.SearchUsers(c.Request.Context(), criteria)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"search_results": users})
	})

	router.GET("/mutual_friends", func(c *gin.Context) {
		user1 := c.Query("user1")
		user2 := c.Query("user2")
		if user1 == "" || user2 == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user1 and user2 are required"})
			return
		}

		names, err := repo.MutualFriends(c.Request.Context(), user1, user2)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"mutual_friends": names})
	})

	users := router.Group("/users")
	{
		users.GET("/:name", func(c *gin.Context) {
			user, err := repo.GetUser(c.Request.Context(), c.Param("name"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		users.GET("/:name/friends", func(c *gin.Context) {
			names, err := repo.ListFriends(c.Request.Context(), c.Param("name"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"friends": names})
		})

		users.GET("/:name/requests", func(c *gin.Context) {
			names, err := repo.PendingRequests(c.Request.Context(), c.Param("name"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"pending_requests": names})
		})

		users.GET("/:name/posts", func(c *gin.Context) {
			posts, err := repo.GetUserPosts(c.Request.Context(), c.Param("name"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"posts": posts})
		})
	}

	router.GET("/groups/:name/members", func(c *gin.Context) {
		names, err := repo.GroupMembers(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"members": names})
	})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's fault, not-found and conflict are normal
// business outcomes, everything else is a store failure.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Graph operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
