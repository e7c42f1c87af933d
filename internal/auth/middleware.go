package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminRequired is a Gin middleware that validates the admin JWT from
// Authorization: Bearer <token> and rejects revoked tokens.
func AdminRequired(jwtManager *JWTManager, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.TokenID())
		if err != nil {
			logrus.WithError(err).Error("revocation lookup failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "session check unavailable",
			})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		setClaims(c, claims)

		c.Next()
	}
}
