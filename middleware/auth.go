package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hemali15f/BookNest/services"
)

const (
	UserContextKey  = "user_id"
	EmailContextKey = "email"
	RoleContextKey  = "role"
)

// ITokenVerifier validates a session token and returns its claims.
type ITokenVerifier interface {
	Validate(tokenStr string) (*services.Claims, error)
}

// AuthMiddleware verifies the bearer token and stores the identity claims in
// the request context. A missing or invalid token is 401, never 403; the role
// check is a separate concern (RequireAdmin).
func AuthMiddleware(tokens ITokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		tokenStr := header
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			tokenStr = after
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserContextKey, claims.UserID)
		c.Set(EmailContextKey, claims.Email)
		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin is the single authorization predicate for privileged routes.
// It runs after AuthMiddleware and rejects any identity whose role is not
// admin with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleContextKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		if roleStr, ok := role.(string); !ok || roleStr != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's id from the context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, ok := c.Get(UserContextKey)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	idStr, ok := val.(string)
	if !ok || idStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(idStr)
}
