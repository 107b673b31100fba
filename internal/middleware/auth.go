package middleware

import (
	"net/http"
	"strings"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/services/accounts"

	"github.com/gin-gonic/gin"
)

const scopeKey = "authScope"

// RequireAuth validates the bearer token, resolves the principal to an
// authorization scope and stores it on the context. Handlers downstream
// never see raw credentials.
func RequireAuth(svc *accounts.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := auth.ParseToken(jwtSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := svc.GetUserByEmail(claims.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		scope, err := svc.ResolveScope(user)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(scopeKey, scope)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetScope(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// GetScope returns the scope set by RequireAuth.
func GetScope(c *gin.Context) auth.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if scope, ok := v.(auth.Scope); ok {
			return scope
		}
	}
	return auth.Scope{}
}
