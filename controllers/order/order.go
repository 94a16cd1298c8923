package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
)

// -------- Request Structs --------

type LineItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	UserID   uint            `json:"userId" binding:"required"`
	Products []LineItemInput `json:"products" binding:"required,min=1,dive"`
}

func (in LineItemInput) lineItem() models.LineItem {
	return models.LineItem{ProductID: in.ProductID, Quantity: in.Quantity}
}

// -------- Helpers --------

func orderIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("order.param", "invalid order id %q", c.Param("id"))
	}
	return uint(id), nil
}

func bindError(op string, err error) error {
	return apperrors.Wrap(apperrors.KindValidation, op, "invalid request body", err)
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, bindError(opCreate, err))
			return
		}
		items := make([]models.LineItem, 0, len(req.Products))
		for _, p := range req.Products {
			items = append(items, p.lineItem())
		}

		created, err := svc.CreateOrder(c.Request.Context(), req.UserID, items)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// POST /orders/:id/product
func AddLineItemHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := orderIDParam(c)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		var input LineItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, bindError(opAddItem, err))
			return
		}

		item, err := svc.AddLineItem(c.Request.Context(), orderID, input.lineItem())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// GET /orders
func GetAllOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.GetAllOrders(c.Request.Context())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderByIDHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := orderIDParam(c)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		order, err := svc.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				apperrors.RespondWithStatus(c, http.StatusNotFound, err)
				return
			}
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/:id/products
func GetOrderProductsHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := orderIDParam(c)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		products, err := svc.GetProductsFromOrder(c.Request.Context(), orderID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if len(products) == 0 {
			apperrors.RespondWithStatus(c, http.StatusNotFound,
				apperrors.NotFound(opProductsFor, "order %d has no products", orderID))
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /orders/ordersByUser/:id
func GetUserOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || userID == 0 {
			apperrors.Respond(c, apperrors.Validation(opListByUser, "invalid user id %q", c.Param("id")))
			return
		}
		orders, err := svc.GetOrdersByUser(c.Request.Context(), uint(userID))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if len(orders) == 0 {
			apperrors.RespondWithStatus(c, http.StatusNotFound,
				apperrors.NotFound(opListByUser, "user %d has no orders", userID))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// DELETE /orders/:id
func DeleteOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := orderIDParam(c)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		deleted, err := svc.DeleteOrder(c.Request.Context(), orderID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted)
	}
}
