package catalog

import (
	"testing"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name string, category enums.ProductCategory) Product {
	return Product{
		ID:                 uuid.New(),
		Name:               name,
		Price:              decimal.NewFromInt(24),
		Category:           category,
		PackageWeightGrams: 1200,
		Available:          true,
	}
}

func TestNewCatalogKeepsSuppliedOrder(t *testing.T) {
	t.Parallel()

	a := product("Striploin", enums.ProductCategoryBeef)
	b := product("Chicken Legs", enums.ProductCategoryPoultry)
	c := product("Flank Steak", enums.ProductCategoryBeef)

	cat, err := NewCatalog([]Product{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	got, ok := cat.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, b.Name, got.Name)

	beef := cat.ByCategory(enums.ProductCategoryBeef)
	require.Len(t, beef, 2)
	assert.Equal(t, a.ID, beef[0].ID)
	assert.Equal(t, c.ID, beef[1].ID)

	all := cat.Products()
	all[0].Name = "mutated"
	again, _ := cat.Get(a.ID)
	assert.Equal(t, "Striploin", again.Name)
}

func TestNewCatalogRejectsBadProducts(t *testing.T) {
	t.Parallel()

	dup := product("Ribs", enums.ProductCategoryPork)
	bad := product("Mystery", enums.ProductCategory("alien"))
	_, err := NewCatalog([]Product{dup, dup, {Name: "no id"}, bad})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, err.Error(), "invalid catalog")
}

func TestNilCatalogIsEmpty(t *testing.T) {
	t.Parallel()

	var cat *Catalog
	assert.Zero(t, cat.Len())
	_, ok := cat.Get(uuid.New())
	assert.False(t, ok)
	require.Error(t, Require(cat))
}

func TestProductPricing(t *testing.T) {
	t.Parallel()

	p := product("Brisket", enums.ProductCategoryBeef)
	p.PackageWeightGrams = 2000
	assert.True(t, decimal.NewFromInt(12).Equal(p.PricePerKg()))

	sale := decimal.NewFromInt(18)
	p.SalePrice = &sale
	assert.True(t, sale.Equal(p.EffectivePrice()))
	assert.True(t, decimal.NewFromInt(9).Equal(p.PricePerKg()))

	p.PackageWeightGrams = 0
	assert.True(t, p.PricePerKg().IsZero())
	assert.Zero(t, p.PackageWeightKg())
}

func TestProductTags(t *testing.T) {
	t.Parallel()

	p := product("Smoked BACON strips", enums.ProductCategoryPork)
	assert.Equal(t, enums.ConsumptionTypeStaple, p.EffectiveConsumptionType())
	assert.True(t, p.NameContains(" bacon "))
	assert.False(t, p.NameContains(""))
	assert.True(t, p.IsMeal())

	p.Breakfast = true
	assert.False(t, p.IsMeal())

	p.Texture = " Ground "
	assert.Equal(t, "ground", p.NormalizedTexture())

	assert.False(t, product("Tiramisu", enums.ProductCategoryDessert).IsMeal())
}
