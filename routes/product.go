package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront-backend/controllers/product"
	"github.com/junaidrashid-git/storefront-backend/middleware"
)

// SetupProductRoutes registers "/products/*". Browsing is public, writes need
// a bearer token.
func SetupProductRoutes(r *gin.Engine, deps Dependencies, h handlers) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(h.products))
		products.GET("/:id", productcontroller.GetProductByID(h.products))

		auth := middleware.ValidateToken(deps.Tokens)
		products.POST("", auth, productcontroller.CreateProduct(h.products))
		products.PUT("/:id", auth, productcontroller.UpdateProduct(h.products))
		products.DELETE("/:id", auth, productcontroller.DeleteProduct(h.products))
	}
}
