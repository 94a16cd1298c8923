package productcontroller

import (
	"context"
	"errors"
	"strings"

	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store reads and writes the product catalogue.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Filter narrows Index. Zero values match everything.
type Filter struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // id, name or price
	Desc     bool
}

var sortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

func (s *Store) Index(ctx context.Context, f Filter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "id"
	}
	if f.Desc {
		column += " DESC"
	}

	products := []models.Product{}
	if err := query.Order(column).Find(&products).Error; err != nil {
		return nil, apperrors.Store("product.index", err)
	}
	return products, nil
}

func (s *Store) Show(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperrors.NotFound("product.show", "product %d does not exist", id)
		}
		return models.Product{}, apperrors.Store("product.show", err)
	}
	return product, nil
}

func (s *Store) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = 0
	if err := validate("product.create", product); err != nil {
		return models.Product{}, err
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, apperrors.FromStore("product.create", err)
	}
	return product, nil
}

// Update replaces every field of product id.
func (s *Store) Update(ctx context.Context, id uint, product models.Product) (models.Product, error) {
	const op = "product.update"
	if err := validate(op, product); err != nil {
		return models.Product{}, err
	}
	product.ID = id
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, id).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		return tx.Select("*").Save(&product).Error
	})
	if err != nil {
		return models.Product{}, apperrors.FromStore(op, err)
	}
	return product, nil
}

// Delete removes product id. Products still referenced by an order line are
// kept.
func (s *Store) Delete(ctx context.Context, id uint) (models.Product, error) {
	const op = "product.delete"
	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		var referenced int64
		if err := tx.Model(&models.LineItem{}).Where("product_id = ?", id).Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return apperrors.Validation(op, "product %d is part of %d order lines", id, referenced)
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return models.Product{}, apperrors.FromStore(op, err)
	}
	return product, nil
}

func validate(op string, p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Validation(op, "name is required")
	}
	if p.Price.IsNegative() {
		return apperrors.Validation(op, "price must not be negative")
	}
	return nil
}
