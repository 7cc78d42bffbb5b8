package enums

import "fmt"

// ProductCategory represents the fixed catalog taxonomy.
type ProductCategory string

const (
	ProductCategoryBeef        ProductCategory = "beef"
	ProductCategoryPoultry     ProductCategory = "poultry"
	ProductCategoryPork        ProductCategory = "pork"
	ProductCategoryFishSeafood ProductCategory = "fish_seafood"
	ProductCategoryGame        ProductCategory = "game"
	ProductCategoryReadyToEat  ProductCategory = "ready_to_eat"
	ProductCategoryAppetizer   ProductCategory = "appetizer"
	ProductCategoryDessert     ProductCategory = "dessert"
	ProductCategorySauce       ProductCategory = "sauce"
	ProductCategorySpice       ProductCategory = "spice"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBeef,
	ProductCategoryPoultry,
	ProductCategoryPork,
	ProductCategoryFishSeafood,
	ProductCategoryGame,
	ProductCategoryReadyToEat,
	ProductCategoryAppetizer,
	ProductCategoryDessert,
	ProductCategorySauce,
	ProductCategorySpice,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsMeal reports whether products in the category can be served as a main meal.
func (c ProductCategory) IsMeal() bool {
	switch c {
	case ProductCategoryAppetizer, ProductCategoryDessert, ProductCategorySauce, ProductCategorySpice:
		return false
	default:
		return c.IsValid()
	}
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ConsumptionType tags how a product is usually cooked.
type ConsumptionType string

const (
	ConsumptionTypeStaple ConsumptionType = "staple"
	ConsumptionTypeQuick  ConsumptionType = "quick"
	ConsumptionTypeRoast  ConsumptionType = "roast"
)

var validConsumptionTypes = []ConsumptionType{
	ConsumptionTypeStaple,
	ConsumptionTypeQuick,
	ConsumptionTypeRoast,
}

// String implements fmt.Stringer.
func (c ConsumptionType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConsumptionType.
func (c ConsumptionType) IsValid() bool {
	for _, candidate := range validConsumptionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// OrDefault maps an empty or unknown tag to staple.
func (c ConsumptionType) OrDefault() ConsumptionType {
	if c.IsValid() {
		return c
	}
	return ConsumptionTypeStaple
}

// ParseConsumptionType converts raw input into a ConsumptionType. Empty input means staple.
func ParseConsumptionType(value string) (ConsumptionType, error) {
	if value == "" {
		return ConsumptionTypeStaple, nil
	}
	for _, candidate := range validConsumptionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid consumption type %q", value)
}
