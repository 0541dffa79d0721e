package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

const (
	ContextUserID   = "userId"
	ContextUserRole = "userRole"
)

// Protect authenticates the request from the Authorization header or the
// token cookie and attaches the resolved identity to the context. Every
// resolution failure looks the same to the caller: 401.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			tokenStr = strings.TrimSpace(auth[len("bearer "):])
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		}

		// "none" is what logout overwrites the cookie with.
		if tokenStr == "" || tokenStr == "none" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}

		claims, err := utils.ValidateJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// Authorize permits only the given roles past. Runs after Protect.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User role " + string(role) + " is not authorized to access this route",
		})
	}
}

// CurrentUserID returns the authenticated user id set by Protect.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentRole returns the authenticated role set by Protect.
func CurrentRole(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(ContextUserRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}
