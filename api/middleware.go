package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
)

const claimsKey = "auth_claims"

// requireAuth parses the bearer token and, when roles are given, rejects
// principals outside the allowed set. Role gates are per-route, matching
// the console's route guards.
func requireAuth(tokens *auth.TokenIssuer, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden for role"})
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// principal returns the verified claims set by requireAuth.
func principal(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return &auth.Claims{}
	}
	return v.(*auth.Claims)
}
