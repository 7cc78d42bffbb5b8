package budget

import (
	"testing"

	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/demand"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	beef1 = household.NewSlotKey(enums.SlotGroupBeef, 1)
	beef2 = household.NewSlotKey(enums.SlotGroupBeef, 2)
	pork1 = household.NewSlotKey(enums.SlotGroupPork, 1)
)

func TestScaleClampsToCeiling(t *testing.T) {
	t.Parallel()

	freqs := household.Frequencies{beef1: 1, beef2: 0.5, pork1: 0}
	out := Scale(freqs, decimal.NewFromInt(500), decimal.NewFromInt(100))

	for k, f := range out {
		assert.LessOrEqualf(t, f, MaxFrequency, "slot %s exceeded ceiling", k)
	}
	assert.Equal(t, 2.0, out[beef1])
	assert.Equal(t, 2.0, out[beef2])
	assert.Equal(t, 0.0, out[pork1], "inactive slots stay inactive")
	assert.Equal(t, 1.0, freqs[beef1], "input map is not mutated")
}

func TestScaleClampsToFloorAndRoundsToQuarter(t *testing.T) {
	t.Parallel()

	freqs := household.Frequencies{beef1: 1, beef2: 0.25}
	out := Scale(freqs, decimal.NewFromInt(5200), decimal.NewFromInt(30))

	// ratio = 30×52/5200 = 0.3
	assert.Equal(t, 0.25, out[beef1])
	assert.Equal(t, 0.25, out[beef2])

	out = Scale(household.Frequencies{beef1: 1}, decimal.NewFromInt(5200), decimal.NewFromInt(137))
	// ratio ≈ 1.37 → 5.48 quarters → 5 → 1.25
	assert.Equal(t, 1.25, out[beef1])
}

func TestScaleNoOpWithoutCost(t *testing.T) {
	t.Parallel()

	freqs := household.Frequencies{beef1: 1.5}
	out := Scale(freqs, decimal.Zero, decimal.NewFromInt(100))
	assert.Equal(t, freqs, out)

	out = Scale(nil, decimal.NewFromInt(10), decimal.NewFromInt(100))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func fixture() (household.Profile, *catalog.Catalog) {
	product := catalog.Product{
		ID:                 uuid.New(),
		Name:               "Beef Stew Cubes",
		Price:              decimal.NewFromInt(20),
		Category:           enums.ProductCategoryBeef,
		PackageWeightGrams: 1000,
		Available:          true,
	}
	p := household.NewProfile()
	p.Adults = 2
	p.GramsPerPerson = 150
	p.Frequencies[beef1] = 1
	p.Selections[beef1] = product.ID
	return p, catalog.MustCatalog(product)
}

func TestAutoScaleConvergesWithinTolerance(t *testing.T) {
	t.Parallel()

	p, cat := fixture()
	target := decimal.NewFromInt(9)

	freqs, err := AutoScaleToBudget(p, cat, target)
	require.NoError(t, err)
	assert.Equal(t, 1.5, freqs[beef1])

	p.Frequencies = freqs
	res, err := demand.Calculate(p, cat)
	require.NoError(t, err)

	annualTarget := target.Mul(decimal.NewFromInt(52))
	gap := res.TotalCost.Sub(annualTarget).Abs()
	assert.Truef(t, gap.LessThanOrEqual(annualTarget.Mul(decimal.NewFromFloat(0.05))),
		"cost %s too far from target %s", res.TotalCost, annualTarget)
}

func TestAutoScaleZeroCostIsNoOp(t *testing.T) {
	t.Parallel()

	p, cat := fixture()
	p.Adults = 0

	freqs, err := AutoScaleToBudget(p, cat, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, 1.0, freqs[beef1])
}

func TestFitMovesUnclampedSlotsAfterCeilingHit(t *testing.T) {
	t.Parallel()

	p, cat := fixture()
	cheap := catalog.Product{
		ID:                 uuid.New(),
		Name:               "Pork Shoulder",
		Price:              decimal.NewFromInt(5),
		Category:           enums.ProductCategoryPork,
		PackageWeightGrams: 1000,
		Available:          true,
	}
	products := append(cat.Products(), cheap)
	cat = catalog.MustCatalog(products...)
	p.Frequencies[beef1] = 1.75
	p.Frequencies[pork1] = 0.25
	p.Selections[pork1] = cheap.ID

	res, err := Fit(p, cat, decimal.NewFromInt(20), 4)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Passes, 1)
	for k, f := range res.Frequencies {
		if f > 0 {
			assert.GreaterOrEqualf(t, f, MinFrequency, "slot %s", k)
			assert.LessOrEqualf(t, f, MaxFrequency, "slot %s", k)
		}
	}

	single, err := AutoScaleToBudget(p, cat, decimal.NewFromInt(20))
	require.NoError(t, err)
	p.Frequencies = single
	once, err := demand.Calculate(p, cat)
	require.NoError(t, err)

	target := decimal.NewFromInt(20 * 52)
	assert.True(t, res.AnnualCost.Sub(target).Abs().LessThanOrEqual(once.TotalCost.Sub(target).Abs()),
		"fit %s should be at least as close as a single pass %s", res.AnnualCost, once.TotalCost)
}

func TestFitWithoutCostReturnsInput(t *testing.T) {
	t.Parallel()

	p, cat := fixture()
	p.Frequencies = household.Frequencies{}

	res, err := Fit(p, cat, decimal.NewFromInt(50), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Passes)
	assert.True(t, res.AnnualCost.IsZero())
}
