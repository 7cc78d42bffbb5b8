package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is the first Monday of 2026.
var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func meal(name string, category enums.ProductCategory, ct enums.ConsumptionType, texture string) catalog.Product {
	return catalog.Product{
		ID:                 uuid.New(),
		Name:               name,
		Price:              decimal.NewFromInt(15),
		Category:           category,
		ConsumptionType:    ct,
		Texture:            texture,
		PackageWeightGrams: 500,
		Available:          true,
	}
}

// soloProfile eats 500 g per meal, so each 500 g package is one meal.
func soloProfile() household.Profile {
	p := household.NewProfile()
	p.Adults = 1
	p.GramsPerPerson = 500
	return p
}

func line(p catalog.Product, q cart.Quantities) cart.Line {
	return cart.Line{ProductID: p.ID, Quantities: q, Source: enums.LineSourceSystemOptimized}
}

func productAt(t *testing.T, days []Day, i int) uuid.UUID {
	t.Helper()
	require.NotNilf(t, days[i].ProductID, "day %d has no meal", i)
	return *days[i].ProductID
}

func TestGenerateEmptyCartIsAllFree(t *testing.T) {
	t.Parallel()

	days, err := Generate(cart.Plan{}, catalog.MustCatalog(), soloProfile(), monday)
	require.NoError(t, err)
	require.Len(t, days, 365)
	for i, d := range days {
		assert.Truef(t, d.IsFreeDay, "day %d", i)
		assert.Nil(t, d.ProductID)
		assert.False(t, d.IsDeliveryDay)
	}
	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, monday.AddDate(0, 0, 364), days[364].Date)
}

func TestGenerateIsByteIdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		meal("Ground Beef", enums.ProductCategoryBeef, enums.ConsumptionTypeStaple, "ground"),
		meal("Chicken Breast", enums.ProductCategoryPoultry, enums.ConsumptionTypeQuick, "whole"),
		meal("Pork Roast", enums.ProductCategoryPork, enums.ConsumptionTypeRoast, "whole"),
		meal("Salmon Fillet", enums.ProductCategoryFishSeafood, enums.ConsumptionTypeQuick, "fillet"),
		meal("Beef Stew", enums.ProductCategoryBeef, "", "cubed"),
	}
	cat := catalog.MustCatalog(products...)
	plan := cart.Plan{}
	for i, p := range products {
		plan.Lines = append(plan.Lines, line(p, cart.Quantities{10 + i, 8, 6 + i, 5}))
	}

	first, err := Generate(plan, cat, soloProfile(), monday)
	require.NoError(t, err)
	second, err := NewGenerator(SplitMix{}).Generate(plan.Clone(), cat, soloProfile(), monday)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerateFollowsWeekdayPreferences(t *testing.T) {
	t.Parallel()

	roast := meal("Rib Roast", enums.ProductCategoryBeef, enums.ConsumptionTypeRoast, "")
	quick := meal("Chicken Strips", enums.ProductCategoryPoultry, enums.ConsumptionTypeQuick, "")
	staple := meal("Pork Chops", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	plan := cart.Plan{Lines: []cart.Line{
		line(roast, cart.Quantities{10, 0, 0, 0}),
		line(quick, cart.Quantities{10, 0, 0, 0}),
		line(staple, cart.Quantities{10, 0, 0, 0}),
	}}

	days, err := Generate(plan, catalog.MustCatalog(roast, quick, staple), soloProfile(), monday)
	require.NoError(t, err)

	assert.True(t, days[0].IsDeliveryDay)
	assert.Equal(t, 1, days[0].DeliveryIndex)
	for i := 0; i < 4; i++ {
		assert.Equalf(t, staple.ID, productAt(t, days, i), "weekday %s", days[i].Date.Weekday())
	}
	assert.Equal(t, quick.ID, productAt(t, days, 4))
	assert.Equal(t, quick.ID, productAt(t, days, 5))
	assert.Equal(t, roast.ID, productAt(t, days, 6))
}

func TestGenerateFallsBackToQuickThenStaple(t *testing.T) {
	t.Parallel()

	quick := meal("Burger Patties", enums.ProductCategoryBeef, enums.ConsumptionTypeQuick, "")
	roast := meal("Whole Turkey", enums.ProductCategoryPoultry, enums.ConsumptionTypeRoast, "")
	staple := meal("Pork Shoulder", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")

	// Monday without staples: quick comes before roast.
	plan := cart.Plan{Lines: []cart.Line{line(roast, cart.Quantities{5, 0, 0, 0}), line(quick, cart.Quantities{5, 0, 0, 0})}}
	days, err := Generate(plan, catalog.MustCatalog(quick, roast), soloProfile(), monday)
	require.NoError(t, err)
	assert.Equal(t, quick.ID, productAt(t, days, 0))

	// Sunday without roasts: quick comes before staple.
	sunday := monday.AddDate(0, 0, 6)
	plan = cart.Plan{Lines: []cart.Line{line(staple, cart.Quantities{5, 0, 0, 0}), line(quick, cart.Quantities{5, 0, 0, 0})}}
	days, err = Generate(plan, catalog.MustCatalog(quick, staple), soloProfile(), sunday)
	require.NoError(t, err)
	assert.Equal(t, quick.ID, productAt(t, days, 0))
}

func TestGenerateHonoursMealsCapAndProteinDays(t *testing.T) {
	t.Parallel()

	staple := meal("Pork Chops", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	plan := cart.Plan{Lines: []cart.Line{line(staple, cart.Quantities{100, 0, 0, 0})}}
	profile := soloProfile()
	profile.MealsPerWeek = 3
	profile.ProteinDays[time.Tuesday] = false

	days, err := Generate(plan, catalog.MustCatalog(staple), profile, monday)
	require.NoError(t, err)

	// Mon eat, Tue off, Wed and Thu eat, cap reached for Fri..Sun.
	want := []bool{false, true, false, false, true, true, true}
	for i, free := range want {
		assert.Equalf(t, free, days[i].IsFreeDay, "day %d (%s)", i, days[i].Date.Weekday())
	}
	assert.False(t, days[7].IsFreeDay, "counter resets on Monday")
}

func TestGenerateAdvancesDeliveriesOnExhaustion(t *testing.T) {
	t.Parallel()

	staple := meal("Pork Chops", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	plan := cart.Plan{Lines: []cart.Line{line(staple, cart.Quantities{2, 2, 0, 1})}}

	days, err := Generate(plan, catalog.MustCatalog(staple), soloProfile(), monday)
	require.NoError(t, err)

	deliveries := map[int]int{}
	for i, d := range days {
		if d.IsDeliveryDay {
			deliveries[i] = d.DeliveryIndex
		}
	}
	assert.Equal(t, map[int]int{0: 1, 2: 2, 4: 4}, deliveries)

	s := Summarize(days)
	assert.Equal(t, 5, s.MealDays)
	assert.Equal(t, 360, s.FreeDays)
	assert.Equal(t, 3, s.DeliveryDays)
	for i := 5; i < len(days); i++ {
		assert.True(t, days[i].IsFreeDay)
	}
}

func TestGenerateAvoidsRepeatingCategory(t *testing.T) {
	t.Parallel()

	beef := meal("Beef Steak", enums.ProductCategoryBeef, enums.ConsumptionTypeStaple, "")
	pork := meal("Pork Steak", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	plan := cart.Plan{Lines: []cart.Line{line(beef, cart.Quantities{10, 0, 0, 0}), line(pork, cart.Quantities{10, 0, 0, 0})}}

	days, err := Generate(plan, catalog.MustCatalog(beef, pork), soloProfile(), monday)
	require.NoError(t, err)

	for i := 1; i < 20; i++ {
		assert.NotEqualf(t, productAt(t, days, i-1), productAt(t, days, i), "days %d and %d", i-1, i)
	}
	assert.True(t, days[20].IsFreeDay)
}

func TestGenerateSpacesGroundMeals(t *testing.T) {
	t.Parallel()

	ground := meal("Ground Beef", enums.ProductCategoryBeef, enums.ConsumptionTypeStaple, "ground")
	whole := meal("Whole Chicken", enums.ProductCategoryPoultry, enums.ConsumptionTypeStaple, "whole")
	fillet := meal("Cod Fillet", enums.ProductCategoryFishSeafood, enums.ConsumptionTypeStaple, "fillet")
	plan := cart.Plan{Lines: []cart.Line{
		line(ground, cart.Quantities{5, 0, 0, 0}),
		line(whole, cart.Quantities{20, 0, 0, 0}),
		line(fillet, cart.Quantities{20, 0, 0, 0}),
	}}
	cat := catalog.MustCatalog(ground, whole, fillet)

	days, err := Generate(plan, cat, soloProfile(), monday)
	require.NoError(t, err)

	lastGround := -10
	for i := 0; i < 30; i++ {
		id := productAt(t, days, i)
		if i > 0 {
			prev, _ := cat.Get(productAt(t, days, i-1))
			cur, _ := cat.Get(id)
			assert.NotEqualf(t, prev.Category, cur.Category, "day %d", i)
		}
		if id == ground.ID {
			assert.Greaterf(t, i-lastGround, groundLookback, "ground meals on days %d and %d", lastGround, i)
			lastGround = i
		}
	}
}

func TestGenerateSkipsNonMealsAndPartialPortions(t *testing.T) {
	t.Parallel()

	dessert := meal("Cheesecake", enums.ProductCategoryDessert, "", "")
	bacon := meal("Bacon", enums.ProductCategoryPork, enums.ConsumptionTypeQuick, "")
	bacon.Breakfast = true
	small := meal("Chicken Wings", enums.ProductCategoryPoultry, enums.ConsumptionTypeQuick, "")
	small.PackageWeightGrams = 400
	plan := cart.Plan{Lines: []cart.Line{
		line(dessert, cart.Quantities{10, 0, 0, 0}),
		line(bacon, cart.Quantities{10, 0, 0, 0}),
		line(small, cart.Quantities{1, 0, 0, 0}),
	}}

	days, err := Generate(plan, catalog.MustCatalog(dessert, bacon, small), soloProfile(), monday)
	require.NoError(t, err)

	s := Summarize(days)
	assert.Zero(t, s.MealDays)
	assert.Zero(t, s.DeliveryDays)
	assert.Equal(t, 365, s.FreeDays)
}

func TestGenerateZeroHouseholdIsAllFree(t *testing.T) {
	t.Parallel()

	staple := meal("Pork Chops", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	profile := soloProfile()
	profile.Adults = 0

	days, err := Generate(cart.Plan{Lines: []cart.Line{line(staple, cart.Quantities{4, 4, 4, 4})}}, catalog.MustCatalog(staple), profile, monday)
	require.NoError(t, err)
	assert.Equal(t, 365, Summarize(days).FreeDays)
}

func TestGenerateRejectsMissingCatalog(t *testing.T) {
	t.Parallel()

	_, err := Generate(cart.Plan{}, nil, soloProfile(), monday)
	require.Error(t, err)
}

func TestDayJSONShape(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("7f1c2d3e-0000-4000-8000-000000000001")
	day := Day{Date: monday, ProductID: &id, IsDeliveryDay: true, DeliveryIndex: 2, Locked: true}
	raw, err := json.Marshal(day)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-01-05","productId":"7f1c2d3e-0000-4000-8000-000000000001","isDeliveryDay":true,"deliveryIndex":2,"isFreeDay":false,"locked":true}`, string(raw))

	free, err := json.Marshal(Day{Date: monday, IsFreeDay: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-01-05","productId":null,"isDeliveryDay":false,"isFreeDay":true,"locked":false}`, string(free))

	var decoded Day
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, day, decoded)
}
