package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	"shop-api/internal/services"
)

const actorGinKey = "actor"

func actorFromGin(c *gin.Context) *domain.User {
	v, ok := c.Get(actorGinKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func resolveBearer(c *gin.Context, tokens *auth.TokenManager, authService *services.AuthService) *domain.User {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil
	}
	user, err := authService.ResolveUser(c.Request.Context(), claims)
	if err != nil {
		return nil
	}
	return user
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens *auth.TokenManager, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveBearer(c, tokens, authService)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		attachActor(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid token is present and lets
// anonymous requests through; the GraphQL schema does its own gating.
func OptionalAuth(tokens *auth.TokenManager, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveBearer(c, tokens, authService); user != nil {
			attachActor(c, user)
		}
		c.Next()
	}
}

func attachActor(c *gin.Context, user *domain.User) {
	c.Set(actorGinKey, user)
	c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), user))
}
