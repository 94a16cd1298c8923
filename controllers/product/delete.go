package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

// DeleteProduct handles DELETE /products/:id and returns the removed row.
func DeleteProduct(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := productIDParam(c, "product.delete")
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		product, err := store.Delete(c.Request.Context(), id)
		if err != nil {
			respondNotFound(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "product": product})
	}
}
