package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/auth"
)

const claimsKey = "claims"

type claimsCtxKey struct{}

// TokenVerifier verifies raw bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// ValidateToken rejects requests without a valid "Authorization: Bearer"
// token and attaches the decoded claims to the gin and request contexts.
func ValidateToken(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Respond(c, apperrors.Unauthenticated("auth.verify_token", "authorization header is missing"))
			return
		}

		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			apperrors.Respond(c, apperrors.Unauthenticated("auth.verify_token", "authorization header must use the Bearer scheme"))
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsCtxKey{}, claims))
		c.Next()
	}
}

// Claims returns the claims attached by ValidateToken.
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// ClaimsFromContext returns the claims attached to a request context.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}
