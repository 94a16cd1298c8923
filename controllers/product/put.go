package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

// UpdateProduct handles PUT /products/:id. Every field is replaced.
func UpdateProduct(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := productIDParam(c, "product.update")
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindValidation, "product.update", "invalid request body", err))
			return
		}

		product, err := store.Update(c.Request.Context(), id, input.product())
		if err != nil {
			respondNotFound(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
