package models

type OrderStatus string

const (
	OrderStatusActive  OrderStatus = "active"  // Initial state, accepts new line items
	OrderStatusDeleted OrderStatus = "deleted" // Terminal, set on the snapshot returned by deletion

	// Legacy name for the initial state found in older rows.
	OrderStatusOpen OrderStatus = "open"
)

// IsActive reports whether the order still accepts mutations.
func (s OrderStatus) IsActive() bool {
	return s == OrderStatusActive || s == OrderStatusOpen
}

// Canonical maps legacy status names onto the canonical vocabulary.
func (s OrderStatus) Canonical() OrderStatus {
	if s == OrderStatusOpen {
		return OrderStatusActive
	}
	return s
}

type Order struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	Status OrderStatus `gorm:"type:VARCHAR(20);not null;default:'active'" json:"status"`
	UserID uint        `gorm:"not null;index" json:"userId"`
	User   *User       `gorm:"foreignKey:UserID" json:"-"`
}

// LineItem is one product-quantity row of an order, stored in order_products.
type LineItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	Order     *Order   `gorm:"foreignKey:OrderID" json:"-"`
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int      `gorm:"not null" json:"quantity"`
}

func (LineItem) TableName() string { return "order_products" }

// DeletedOrder is the snapshot returned by an order deletion.
type DeletedOrder struct {
	DeletedOrder     Order      `json:"deletedOrder"`
	DeletedLineItems []LineItem `json:"deletedLineItems"`
}
