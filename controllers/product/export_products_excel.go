package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Name", "Price", "Category", "Description"}

// ExportProductsToExcel streams the whole catalogue as products.xlsx.
func ExportProductsToExcel(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.Index(c.Request.Context(), Filter{})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		file, err := productWorkbook(products)
		if err != nil {
			apperrors.Respond(c, apperrors.Store("product.export", err))
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Status(http.StatusOK)

		// Headers are already sent, so a failed write can only be logged.
		if err := file.Write(c.Writer); err != nil {
			_ = c.Error(apperrors.Store("product.export", err))
		}
	}
}

func productWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Description)
	}
	return file, nil
}
