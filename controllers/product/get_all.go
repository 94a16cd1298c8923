package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/shopspring/decimal"
)

// GetProducts lists the catalogue.
//
// Query params:
//
//	search     substring of name or description, case-insensitive
//	category   exact category
//	min_price  inclusive lower bound
//	max_price  inclusive upper bound
//	sort_by    id (default), name or price
//	order      asc (default) or desc
func GetProducts(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := Filter{
			Search:   strings.TrimSpace(c.Query("search")),
			Category: strings.TrimSpace(c.Query("category")),
			SortBy:   strings.ToLower(c.DefaultQuery("sort_by", "id")),
			Desc:     strings.EqualFold(c.Query("order"), "desc"),
		}

		var err error
		if filter.MinPrice, err = priceQuery(c, "min_price"); err != nil {
			apperrors.Respond(c, err)
			return
		}
		if filter.MaxPrice, err = priceQuery(c, "max_price"); err != nil {
			apperrors.Respond(c, err)
			return
		}

		products, err := store.Index(c.Request.Context(), filter)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func priceQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.Validation("product.index", "invalid %s %q", key, raw)
	}
	return &price, nil
}
