package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bistroboss/bistro-server/internal/user"
)

const claimsKey = "auth.claims"

// Authenticated requires a valid Bearer token and stores the decoded claims
// in the request context. Missing, malformed, tampered and expired tokens all
// terminate the request with 401 before the handler runs.
func Authenticated(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		claims, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminOnly must run after Authenticated. The role comes from the stored user
// record on every request, never from the token, so revoking admin takes
// effect without re-issuing tokens. When the route carries an :email param it
// must match the token subject before any lookup happens.
func AdminOnly(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		if email := c.Param("email"); email != "" && email != claims.Email {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims attached by Authenticated.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
