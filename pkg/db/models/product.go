package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
)

// Product is a catalog row. Position preserves the supplied catalog order.
type Product struct {
	ID                 uuid.UUID             `gorm:"column:id;type:text;primaryKey"`
	SKU                string                `gorm:"column:sku;not null;uniqueIndex"`
	Name               string                `gorm:"column:name;not null"`
	Price              decimal.Decimal       `gorm:"column:price;type:text;not null"`
	SalePrice          decimal.NullDecimal   `gorm:"column:sale_price;type:text"`
	Category           enums.ProductCategory `gorm:"column:category;not null"`
	ConsumptionType    enums.ConsumptionType `gorm:"column:consumption_type;not null;default:'staple'"`
	Texture            string                `gorm:"column:texture;not null;default:''"`
	PackageWeightGrams float64               `gorm:"column:package_weight_grams;not null"`
	Available          bool                  `gorm:"column:available;not null;default:true"`
	Premium            bool                  `gorm:"column:premium;not null;default:false"`
	Breakfast          bool                  `gorm:"column:breakfast;not null;default:false"`
	Position           int                   `gorm:"column:position;not null;default:0"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
