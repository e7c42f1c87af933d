package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	tokenIDKey     = "tokenID"
	tokenExpiryKey = "tokenExpiry"
)

// GetTokenID returns the jti of the authenticated admin token or empty string.
func GetTokenID(c *gin.Context) string {
	return c.GetString(tokenIDKey)
}

// GetTokenExpiry returns when the authenticated admin token expires.
func GetTokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(tokenExpiryKey)
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(tokenIDKey, claims.TokenID())
	c.Set(tokenExpiryKey, claims.Expiry())
}
