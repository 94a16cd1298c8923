package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/shopspring/decimal"
)

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func (in ProductInput) product() models.Product {
	return models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		Description: in.Description,
	}
}

// CreateProduct handles POST /products.
func CreateProduct(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindValidation, "product.create", "invalid request body", err))
			return
		}

		product, err := store.Create(c.Request.Context(), input.product())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
