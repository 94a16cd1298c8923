package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/storefront-backend/controllers/order"
	"github.com/junaidrashid-git/storefront-backend/middleware"
)

func SetupOrderRoutes(r *gin.Engine, deps Dependencies, h handlers) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(deps.Tokens))
	{
		// Create a new order with its line items
		orders.POST("", orderControllers.CreateOrderHandler(h.orders))

		// Fetch all orders
		orders.GET("", orderControllers.GetAllOrdersHandler(h.orders))

		// Fetch orders for a specific user
		orders.GET("/ordersByUser/:id", orderControllers.GetUserOrdersHandler(h.orders))

		orders.GET("/:id", orderControllers.GetOrderByIDHandler(h.orders))
		orders.GET("/:id/products", orderControllers.GetOrderProductsHandler(h.orders))

		// Add a line item to an active order
		orders.POST("/:id/product", orderControllers.AddLineItemHandler(h.orders))

		// Delete an order
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(h.orders))
	}
}
