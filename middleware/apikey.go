package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

// ValidateAPIKey guards admin routes with the X-API-KEY header. An empty
// configured key disables the admin routes entirely.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if key == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) != 1 {
			apperrors.Respond(c, apperrors.Unauthenticated("auth.validate_api_key", "invalid or missing API key"))
			return
		}
		c.Next()
	}
}
