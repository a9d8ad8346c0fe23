package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "REDIS_ADDR", "RECOMMENDATION_TTL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, 5*time.Minute, cfg.RecommendationTTL)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEO4J_URI", "bolt://neo4j:7687")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RECOMMENDATION_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "bolt://neo4j:7687", cfg.Neo4jURI)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, time.Minute, cfg.RecommendationTTL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Neo4jURI:          "bolt://localhost:7687",
		Neo4jUser:         "neo4j",
		Neo4jPassword:     "password",
		RecommendationTTL: time.Minute,
	}
	assert.NoError(t, cfg.Validate())

	missing := *cfg
	missing.Neo4jURI = ""
	assert.Error(t, missing.Validate())

	badTTL := *cfg
	badTTL.RecommendationTTL = 0
	assert.Error(t, badTTL.Validate())
}

func TestEnvModes(t *testing.T) {
	dev := &Config{Env: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := &Config{Env: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}
