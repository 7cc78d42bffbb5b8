package catalog

import (
	"strings"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog entry as seen by the planning engine.
type Product struct {
	ID                 uuid.UUID             `json:"id"`
	SKU                string                `json:"sku"`
	Name               string                `json:"name"`
	Price              decimal.Decimal       `json:"price"`
	SalePrice          *decimal.Decimal      `json:"salePrice,omitempty"`
	Category           enums.ProductCategory `json:"category"`
	ConsumptionType    enums.ConsumptionType `json:"consumptionType,omitempty"`
	Texture            string                `json:"texture,omitempty"`
	PackageWeightGrams float64               `json:"packageWeightGrams"`
	Available          bool                  `json:"available"`
	Premium            bool                  `json:"premium"`
	Breakfast          bool                  `json:"breakfast,omitempty"`
}

// EffectivePrice returns the sale price when one is set, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// PricePerKg returns the effective price per kilogram, or zero for weightless packages.
func (p Product) PricePerKg() decimal.Decimal {
	if p.PackageWeightGrams <= 0 {
		return decimal.Zero
	}
	kg := decimal.NewFromFloat(p.PackageWeightGrams).Div(decimal.NewFromInt(1000))
	return p.EffectivePrice().Div(kg)
}

// PackageWeightKg returns the package weight in kilograms.
func (p Product) PackageWeightKg() float64 {
	if p.PackageWeightGrams <= 0 {
		return 0
	}
	return p.PackageWeightGrams / 1000
}

// EffectiveConsumptionType treats untagged products as staples.
func (p Product) EffectiveConsumptionType() enums.ConsumptionType {
	return p.ConsumptionType.OrDefault()
}

// NormalizedTexture returns the lower-cased texture tag.
func (p Product) NormalizedTexture() string {
	return strings.ToLower(strings.TrimSpace(p.Texture))
}

// IsMeal reports whether the product can be scheduled as a main meal.
func (p Product) IsMeal() bool {
	return !p.Breakfast && p.Category.IsMeal()
}

// NameContains performs a case-insensitive substring match on the product name.
func (p Product) NameContains(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), keyword)
}
