package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := productIDParam(c, "product.show")
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		product, err := store.Show(c.Request.Context(), id)
		if err != nil {
			respondNotFound(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func productIDParam(c *gin.Context, op string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(op, "invalid product id %q", c.Param("id"))
	}
	return uint(id), nil
}

// respondNotFound answers 404 for missing products and the usual mapping
// otherwise.
func respondNotFound(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.RespondWithStatus(c, http.StatusNotFound, err)
		return
	}
	apperrors.Respond(c, err)
}
