package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/config"
	"warbler/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerDBSeq atomic.Int64

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test-secret", Port: "8080"}

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:handler_%s_%d?mode=memory&cache=shared", name, handlerDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", RegisterUser)
			authRoutes.POST("/login", LoginUser)
		}

		apiV1.GET("/timeline", auth.OptionalAuthMiddleware(), GetHomeTimeline)

		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", SearchUsers)
			userRoutes.GET("/me", GetMe)
			userRoutes.PUT("/me", UpdateMe)
			userRoutes.DELETE("/me", DeleteMe)
			userRoutes.GET("/:id", GetUserByID)
			userRoutes.GET("/:id/followers", GetFollowers)
			userRoutes.GET("/:id/following", GetFollowing)
			userRoutes.GET("/:id/likes", GetUserLikes)
			userRoutes.GET("/:id/messages", GetUserMessages)
			userRoutes.POST("/:id/follow", FollowUser)
			userRoutes.POST("/:id/unfollow", UnfollowUser)
		}

		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", CreateMessage)
			messageRoutes.GET("/:id", GetMessageByID)
			messageRoutes.DELETE("/:id", DeleteMessage)
			messageRoutes.POST("/:id/like", ToggleLike)
		}
	}
	return router
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestAuthFlow(t *testing.T) {
	router := setupTest(t)

	token := registerAndLogin(t, router, "alice")

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "alice",
			"email":    "different@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login with unknown username looks identical", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route requires a token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me endpoint returns the private profile", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/users/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var me PrivateUserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		assert.Equal(t, "alice", me.Username)
		assert.Equal(t, "alice@example.com", me.Email)
	})
}

func TestMessageAndTimelineFlow(t *testing.T) {
	router := setupTest(t)

	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	// Bob posts; alice follows bob.
	w := doRequest(router, http.MethodPost, "/api/v1/messages", bobToken, gin.H{"text": "bob's warble"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var posted MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	assert.Equal(t, "bob", posted.Author.Username)

	w = doRequest(router, http.MethodPost, "/api/v1/users/2/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("home timeline includes followed author", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/timeline", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var timeline TimelineResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
		require.Len(t, timeline.Messages, 1)
		assert.Equal(t, "bob's warble", timeline.Messages[0].Text)
	})

	t.Run("anonymous timeline is empty", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/timeline", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var timeline TimelineResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
		assert.Empty(t, timeline.Messages)
	})

	t.Run("like toggles on and off", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/messages/%d/like", posted.ID)

		w := doRequest(router, http.MethodPost, path, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"liked": true}`, w.Body.String())

		w = doRequest(router, http.MethodPost, path, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"liked": false}`, w.Body.String())
	})

	t.Run("only the author can delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/messages/%d", posted.ID)

		w := doRequest(router, http.MethodDelete, path, aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(router, http.MethodDelete, path, bobToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("self-follow is a bad request", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/users/1/follow", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("profile shows follow state relative to viewer", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/users/2", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var profile PublicUserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		require.NotNil(t, profile.IsFollowing)
		assert.True(t, *profile.IsFollowing)
		require.NotNil(t, profile.IsFollowedBy)
		assert.False(t, *profile.IsFollowedBy)
	})
}
