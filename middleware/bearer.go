package middleware

import (
	"strings"

	"hoaxify/hoax-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewTokenMiddleware attaches the owning user of a valid bearer token to the
// context. It never aborts: a missing, unknown or expired token simply leaves
// the request anonymous and the owner-scoped handlers reject it themselves.
// Verification refreshes the token's sliding expiry window as a side effect
func NewTokenMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token != "" {
			if userID, ok := service.VerifyToken(db, token); ok {
				c.Set("userID", userID)
			}
		}

		c.Next()
	}
}

// BearerToken extracts the opaque token from the Authorization header,
// returning "" when the header is absent or malformed
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(header, "Bearer ")
}
