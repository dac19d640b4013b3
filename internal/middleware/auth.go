package middleware

import (
	"net/http"
	"strings"

	"github.com/jugal-ahir/ByteHackage/internal/models"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and loads the caller into the context,
// so handlers have the actor's id, name and role without a second lookup.
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CurrentUser returns the actor stored by JWTAuth.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// RequireOrganizer gates the admin surface.
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleOrganizer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, organizer role required"})
			return
		}
		c.Next()
	}
}

// RequireCoordinator gates operations open to coordinators and organizers.
func RequireCoordinator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsCoordinator() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, coordinator role required"})
			return
		}
		c.Next()
	}
}
