package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/junaidrashid-git/storefront-backend/controllers/user"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Dependencies, h handlers) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", userControllers.Login(h.users, deps.Tokens))
	}
}
