package orderControllers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	opCreate      = "order.create"
	opAddItem     = "order.add_item"
	opDelete      = "order.delete"
	opGet         = "order.get"
	opList        = "order.list"
	opListByUser  = "order.list_by_user"
	opProductsFor = "order.products"
)

// Publisher receives order events after their transaction has committed.
type Publisher interface {
	Publish(event Event)
}

// Service owns every read and write of orders and their line items. Each
// mutation runs in its own transaction; gorm rolls back on error or panic and
// returns the connection to the pool on every path.
type Service struct {
	db        *gorm.DB
	logger    *slog.Logger
	publisher Publisher
}

func NewService(db *gorm.DB, logger *slog.Logger, publisher Publisher) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, logger: logger, publisher: publisher}
}

// CreateOrder inserts an active order for userID and one line item per input
// item in a single transaction, returning the created line items.
func (s *Service) CreateOrder(ctx context.Context, userID uint, items []models.LineItem) ([]models.LineItem, error) {
	if userID == 0 {
		return nil, apperrors.Validation(opCreate, "userId is required")
	}
	if len(items) == 0 {
		return nil, apperrors.Validation(opCreate, "at least one product is required")
	}
	for i, item := range items {
		if err := validateItem(opCreate, item); err != nil {
			return nil, apperrors.Validation(opCreate, "products[%d]: %s", i, err.Message)
		}
	}

	var (
		order   models.Order
		created []models.LineItem
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(opCreate, "user %d does not exist", userID)
			}
			return apperrors.Store(opCreate, err)
		}

		order = models.Order{UserID: userID, Status: models.OrderStatusActive}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.FromStore(opCreate, err)
		}

		created = make([]models.LineItem, 0, len(items))
		for _, item := range items {
			row := models.LineItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return apperrors.FromStore(opCreate, err)
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, s.logError("order_create_failed", apperrors.FromStore(opCreate, err), "user_id", userID, "items", len(items))
	}

	s.logger.Info("order created", "order_id", order.ID, "user_id", userID, "items", len(created))
	s.publish(Event{Type: EventOrderCreated, Order: order, LineItems: created})
	return created, nil
}

// AddLineItem adds item to an active order. The order row is locked for the
// rest of the transaction so a concurrent deletion cannot interleave.
func (s *Service) AddLineItem(ctx context.Context, orderID uint, item models.LineItem) (models.LineItem, error) {
	if orderID == 0 {
		return models.LineItem{}, apperrors.Validation(opAddItem, "order id is required")
	}
	if err := validateItem(opAddItem, item); err != nil {
		return models.LineItem{}, err
	}

	var (
		order models.Order
		row   models.LineItem
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = lockActiveOrder(tx, opAddItem, orderID)
		if err != nil {
			return err
		}

		row = models.LineItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if err := tx.Create(&row).Error; err != nil {
			return apperrors.FromStore(opAddItem, err)
		}
		return nil
	})
	if err != nil {
		return models.LineItem{}, s.logError("order_add_item_failed", apperrors.FromStore(opAddItem, err), "order_id", orderID, "product_id", item.ProductID)
	}

	s.logger.Info("order item added", "order_id", orderID, "line_item_id", row.ID, "product_id", row.ProductID)
	s.publish(Event{Type: EventOrderItemAdded, Order: order, LineItems: []models.LineItem{row}})
	return row, nil
}

// DeleteOrder removes an active order and all its line items, returning the
// removed rows. The snapshot carries the terminal deleted status.
func (s *Service) DeleteOrder(ctx context.Context, orderID uint) (models.DeletedOrder, error) {
	if orderID == 0 {
		return models.DeletedOrder{}, apperrors.Validation(opDelete, "order id is required")
	}

	var snapshot models.DeletedOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := lockActiveOrder(tx, opDelete, orderID)
		if err != nil {
			return err
		}

		items := []models.LineItem{}
		if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
			return apperrors.Store(opDelete, err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.LineItem{}).Error; err != nil {
			return apperrors.FromStore(opDelete, err)
		}

		res := tx.Delete(&models.Order{}, order.ID)
		if res.Error != nil {
			return apperrors.FromStore(opDelete, res.Error)
		}
		if res.RowsAffected != 1 {
			return apperrors.NotFound(opDelete, "order %d does not exist", orderID)
		}

		order.Status = models.OrderStatusDeleted
		snapshot = models.DeletedOrder{DeletedOrder: order, DeletedLineItems: items}
		return nil
	})
	if err != nil {
		return models.DeletedOrder{}, s.logError("order_delete_failed", apperrors.FromStore(opDelete, err), "order_id", orderID)
	}

	s.logger.Info("order deleted", "order_id", orderID, "items", len(snapshot.DeletedLineItems))
	s.publish(Event{Type: EventOrderDeleted, Order: snapshot.DeletedOrder, LineItems: snapshot.DeletedLineItems})
	return snapshot, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperrors.NotFound(opGet, "order %d does not exist", orderID)
		}
		return models.Order{}, s.logError("order_get_failed", apperrors.Store(opGet, err), "order_id", orderID)
	}
	order.Status = order.Status.Canonical()
	return order, nil
}

func (s *Service) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, s.logError("order_list_failed", apperrors.Store(opList, err))
	}
	return canonical(orders), nil
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&orders).Error; err != nil {
		return nil, s.logError("order_list_by_user_failed", apperrors.Store(opListByUser, err), "user_id", userID)
	}
	return canonical(orders), nil
}

// GetProductsFromOrder returns the product of every line item of the order,
// in line item order.
func (s *Service) GetProductsFromOrder(ctx context.Context, orderID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Where("order_products.order_id = ?", orderID).
		Order("order_products.id").
		Find(&products).Error
	if err != nil {
		return nil, s.logError("order_products_failed", apperrors.Store(opProductsFor, err), "order_id", orderID)
	}
	return products, nil
}

// lockActiveOrder reads the order with SELECT ... FOR UPDATE and checks that
// it still accepts mutations.
func lockActiveOrder(tx *gorm.DB, op string, orderID uint) (models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperrors.NotFound(op, "order %d does not exist", orderID)
		}
		return models.Order{}, apperrors.Store(op, err)
	}
	if !order.Status.IsActive() {
		return models.Order{}, apperrors.InvalidState(op, "order %d has status %s, it can not be changed anymore", orderID, order.Status)
	}
	order.Status = order.Status.Canonical()
	return order, nil
}

func validateItem(op string, item models.LineItem) *apperrors.Error {
	if item.ProductID == 0 {
		return apperrors.Validation(op, "productId is required")
	}
	if item.Quantity <= 0 {
		return apperrors.Validation(op, "quantity must be a positive integer")
	}
	return nil
}

func canonical(orders []models.Order) []models.Order {
	for i := range orders {
		orders[i].Status = orders[i].Status.Canonical()
	}
	return orders
}

func (s *Service) publish(event Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

// logError logs store failures; business rejections are left to the request log.
func (s *Service) logError(event string, err error, attrs ...any) error {
	if apperrors.KindOf(err) != apperrors.KindStore {
		return err
	}
	fields := make([]any, 0, len(attrs)+4)
	fields = append(fields, "event", event, "error", err.Error())
	fields = append(fields, attrs...)
	s.logger.Error("order service operation failed", fields...)
	return err
}
