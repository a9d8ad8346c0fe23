package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	apperrors "social-graph/pkg/errors"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestRegisterEndpoint_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Mock endpoint with the register binding
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
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	})

	// Missing name
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/register", bytes.NewBufferString(`{"age": 29}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendRequestEndpoint_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Mock endpoint with the friend-request binding
	router.POST("/send_friend_request", func(c *gin.Context) {
		var req struct {
			FromUser string `json:"from_user" binding:"required"`
			ToUser   string `json:"to_user" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/send_friend_request", bytes.NewBufferString(`{"from_user": "Ann"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrEmptySearch, http.StatusBadRequest},
		{"not found", apperrors.NewUserNotFound("Ann"), http.StatusNotFound},
		{"conflict", apperrors.NewUserAlreadyExists("Ann", nil), http.StatusConflict},
		{"store failure", apperrors.NewGraphQueryFailed("op", assert.AnError), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, log, tc.err)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}
