package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront-backend/controllers/product"
	userControllers "github.com/junaidrashid-git/storefront-backend/controllers/user"
	"github.com/junaidrashid-git/storefront-backend/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Dependencies, h handlers) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.AdminAPIKey))
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(h.users))
		adminGroup.GET("/products/export-excel", productcontroller.ExportProductsToExcel(h.products))

		// websocket endpoint for real-time order updates
		adminGroup.GET("/orders/ws", deps.Hub.OrderWebSocketHandler)
	}
}
