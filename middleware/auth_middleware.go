package middleware

import (
	"net/http"

	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/types"
	"github.com/gin-gonic/gin"
)

type Auth struct{}

func NewAuth() *Auth {
	return &Auth{}
}

func claimsFromContext(c *gin.Context) (*types.Claims, bool) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := claimsVal.(*types.Claims)
	return claims, ok
}

// Admin restricts the route to admin users.
func (a *Auth) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if claims.Role != string(models.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// Staff restricts the route to municipal staff and admins.
func (a *Auth) Staff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if claims.Role != string(models.UserRoleStaff) && claims.Role != string(models.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff only"})
			return
		}
		c.Next()
	}
}
