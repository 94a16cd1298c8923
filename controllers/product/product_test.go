package productcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/database/databasetest"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *Store, *gorm.DB) {
	t.Helper()
	db := databasetest.Open(t)
	store := NewStore(db)

	r := gin.New()
	r.GET("/products", GetProducts(store))
	r.GET("/products/:id", GetProductByID(store))
	r.POST("/products", CreateProduct(store))
	r.PUT("/products/:id", UpdateProduct(store))
	r.DELETE("/products/:id", DeleteProduct(store))
	r.GET("/export", ExportProductsToExcel(store))
	return r, store, db
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, store *Store) []models.Product {
	t.Helper()
	var out []models.Product
	for _, p := range []models.Product{
		{Name: "Desk", Price: decimal.RequireFromString("120.50"), Category: "furniture", Description: "Oak desk"},
		{Name: "Lamp", Price: decimal.RequireFromString("15"), Category: "lighting", Description: "Desk lamp"},
		{Name: "Chair", Price: decimal.RequireFromString("45"), Category: "furniture"},
	} {
		created, err := store.Create(context.Background(), p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestStoreIndexFilters(t *testing.T) {
	_, store, _ := newRouter(t)
	seed(t, store)
	ctx := context.Background()

	all, err := store.Index(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Desk", "Lamp", "Chair"}, names(all))

	furniture, err := store.Index(ctx, Filter{Category: "furniture", SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chair", "Desk"}, names(furniture))

	search, err := store.Index(ctx, Filter{Search: "DESK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Desk", "Lamp"}, names(search))

	byPrice, err := store.Index(ctx, Filter{SortBy: "price", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Desk", "Chair", "Lamp"}, names(byPrice))

	max := decimal.NewFromInt(50)
	cheap, err := store.Index(ctx, Filter{MaxPrice: &max})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Lamp", "Chair"}, names(cheap))

	none, err := store.Index(ctx, Filter{Category: "garden"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStoreValidationAndNotFound(t *testing.T) {
	_, store, _ := newRouter(t)
	ctx := context.Background()

	_, err := store.Create(ctx, models.Product{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = store.Create(ctx, models.Product{Name: "Debt", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Show(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.Update(ctx, 42, models.Product{Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.Delete(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStoreDeleteReferencedProduct(t *testing.T) {
	_, store, db := newRouter(t)
	products := seed(t, store)

	user := models.User{FirstName: "A", LastName: "B", Email: "a@b.c", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	order := models.Order{Status: models.OrderStatusActive, UserID: user.ID}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.LineItem{OrderID: order.ID, ProductID: products[0].ID, Quantity: 1}).Error)

	_, err := store.Delete(context.Background(), products[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Show(context.Background(), products[0].ID)
	assert.NoError(t, err)

	deleted, err := store.Delete(context.Background(), products[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", deleted.Name)
}

func TestProductHandlers(t *testing.T) {
	r, _, _ := newRouter(t)

	w := do(r, http.MethodPost, "/products", `{"name":"Desk","price":"120.50","category":"furniture"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, decimal.RequireFromString("120.5").Equal(created.Price))

	w = do(r, http.MethodPost, "/products", `{"price":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/products/%d", created.ID)
	w = do(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, path, `{"name":"Standing desk","price":"300"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Standing desk", updated.Name)
	assert.Equal(t, "", updated.Category)

	w = do(r, http.MethodPut, "/products/999", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/products?min_price=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/products?min_price=100", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodGet, "/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportProductsToExcel(t *testing.T) {
	r, store, _ := newRouter(t)
	products := seed(t, store)

	w := do(r, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")

	file, err := xlsx.OpenBinary(bytes.Clone(w.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, len(products)+1)

	for i, h := range exportHeaders {
		assert.Equal(t, h, sheet.Rows[0].Cells[i].Value)
	}
	first := sheet.Rows[1].Cells
	assert.Equal(t, fmt.Sprint(products[0].ID), first[0].Value)
	assert.Equal(t, "Desk", first[1].Value)
	assert.Equal(t, "120.50", first[2].Value)
	assert.Equal(t, "furniture", first[3].Value)
}
