package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Hemali15f/BookNest/services"
)

func newAuthRouter(tokens ITokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("", AuthMiddleware(tokens))
	authed.GET("/whoami", func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		role, _ := c.Get(RoleContextKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role})
	})

	admin := router.Group("/admin", AuthMiddleware(tokens), RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := newAuthRouter(services.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthRouter(services.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newAuthRouter(tokens)

	userID := uuid.New()
	token, err := tokens.Generate(userID.String(), "a@b.com", "user")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), userID.String())
}

func TestRequireAdmin(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newAuthRouter(tokens)

	t.Run("User Role Forbidden", func(t *testing.T) {
		token, err := tokens.Generate(uuid.New().String(), "a@b.com", "user")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		// A valid credential with the wrong role is 403, not 401.
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("No Credential Unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Admin Role Allowed", func(t *testing.T) {
		token, err := tokens.Generate(uuid.New().String(), "admin@bookstore.com", "admin")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
