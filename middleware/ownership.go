package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

const targetUserKey = "target_user_id"

type ownershipBody struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`
}

// VerifyUserID lets the request through only when the token's user is the
// target user. The target is the :id path parameter, then the body "id", then
// the body "userId"; zero or unparsable values fall through to the next
// source. Must run after ValidateToken. Handlers behind it read the body with
// ShouldBindBodyWith.
func VerifyUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		target := targetUserID(c)
		if !ok || target == 0 || claims.User.ID != target {
			apperrors.Respond(c, apperrors.Unauthorized("auth.verify_user_id", "you are not authorized to make changes to that user"))
			return
		}
		c.Set(targetUserKey, target)
		c.Next()
	}
}

func targetUserID(c *gin.Context) uint {
	if id, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil && id != 0 {
		return uint(id)
	}

	var body ownershipBody
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return 0
	}
	if body.ID != 0 {
		return body.ID
	}
	return body.UserID
}

// TargetUserID returns the user id authorized by VerifyUserID.
func TargetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(targetUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
