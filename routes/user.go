package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/junaidrashid-git/storefront-backend/controllers/user"
	"github.com/junaidrashid-git/storefront-backend/middleware"
)

// SetupUserRoutes registers all "/users/*" endpoints. Everything but signup
// requires a bearer token; writes also require the caller to be the target.
func SetupUserRoutes(r *gin.Engine, deps Dependencies, h handlers) {
	r.POST("/users", userControllers.CreateUser(h.users, deps.Tokens))

	userGroup := r.Group("/users")
	userGroup.Use(middleware.ValidateToken(deps.Tokens))
	{
		userGroup.GET("/:id", userControllers.GetUser(h.users))
		userGroup.POST("/:id", middleware.VerifyUserID(), userControllers.UpdateUser(h.users, deps.Tokens))
		userGroup.PUT("/:id", middleware.VerifyUserID(), userControllers.UpdateUser(h.users, deps.Tokens))
		userGroup.DELETE("/:id", middleware.VerifyUserID(), userControllers.DeleteUser(h.users))
	}
}
