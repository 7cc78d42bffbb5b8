package catalog

import (
	"context"

	"github.com/angelmondragon/freezerplan-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists catalog products.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns stored products in catalog order.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("position ASC").Order("sku ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Load builds an immutable catalog from the stored products.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(products)
}

// Upsert inserts or replaces products by id, keeping their slice order as catalog order.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.Product, 0, len(products))
	for i, p := range products {
		rows = append(rows, toModel(p, i))
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sku", "name", "price", "sale_price", "category", "consumption_type", "texture", "package_weight_grams", "available", "premium", "breakfast", "position", "updated_at"}),
		}).
		Create(&rows).Error
}

// Count returns the number of stored products.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func toModel(p Product, position int) models.Product {
	row := models.Product{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Price:              p.Price,
		Category:           p.Category,
		ConsumptionType:    p.ConsumptionType.OrDefault(),
		Texture:            p.Texture,
		PackageWeightGrams: p.PackageWeightGrams,
		Available:          p.Available,
		Premium:            p.Premium,
		Breakfast:          p.Breakfast,
		Position:           position,
	}
	if p.SalePrice != nil {
		row.SalePrice = decimal.NewNullDecimal(*p.SalePrice)
	}
	return row
}

func fromModel(row models.Product) Product {
	p := Product{
		ID:                 row.ID,
		SKU:                row.SKU,
		Name:               row.Name,
		Price:              row.Price,
		Category:           row.Category,
		ConsumptionType:    row.ConsumptionType,
		Texture:            row.Texture,
		PackageWeightGrams: row.PackageWeightGrams,
		Available:          row.Available,
		Premium:            row.Premium,
		Breakfast:          row.Breakfast,
	}
	if row.SalePrice.Valid {
		sale := row.SalePrice.Decimal
		p.SalePrice = &sale
	}
	return p
}
