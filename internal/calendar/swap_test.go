package calendar

import (
	"testing"
	"time"

	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekOfMeals(t *testing.T) ([]Day, cart.Plan, *catalog.Catalog) {
	t.Helper()
	beef := meal("Beef Steak", enums.ProductCategoryBeef, enums.ConsumptionTypeStaple, "")
	pork := meal("Pork Steak", enums.ProductCategoryPork, enums.ConsumptionTypeStaple, "")
	cat := catalog.MustCatalog(beef, pork)
	plan := cart.Plan{Lines: []cart.Line{line(beef, cart.Quantities{3, 0, 0, 0}), line(pork, cart.Quantities{3, 0, 0, 0})}}
	days, err := Generate(plan, cat, soloProfile(), monday)
	require.NoError(t, err)
	return days, plan, cat
}

func TestSwapExchangesAndPinsBothDays(t *testing.T) {
	t.Parallel()

	days, _, _ := weekOfMeals(t)
	a, b := productAt(t, days, 0), productAt(t, days, 1)

	out, err := Swap(days, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, b, productAt(t, out, 0))
	assert.Equal(t, a, productAt(t, out, 1))
	assert.True(t, out[0].Locked)
	assert.True(t, out[1].Locked)
	assert.True(t, out[0].IsDeliveryDay, "delivery marker stays on its date")
	assert.False(t, out[1].IsDeliveryDay)

	assert.Equal(t, a, productAt(t, days, 0), "input calendar must not change")
	assert.False(t, days[0].Locked)
}

func TestSwapMealWithFreeDay(t *testing.T) {
	t.Parallel()

	days, _, _ := weekOfMeals(t)
	require.True(t, days[10].IsFreeDay)
	want := productAt(t, days, 2)

	out, err := Swap(days, 2, 10)
	require.NoError(t, err)
	assert.True(t, out[2].IsFreeDay)
	assert.Nil(t, out[2].ProductID)
	assert.False(t, out[10].IsFreeDay)
	assert.Equal(t, want, productAt(t, out, 10))
}

func TestSwapRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	days, _, _ := weekOfMeals(t)
	for _, pair := range [][2]int{{-1, 0}, {0, 365}, {400, 2}} {
		_, err := Swap(days, pair[0], pair[1])
		require.Errorf(t, err, "pair %v", pair)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	}
}

func TestRegenerateKeepsLockedDays(t *testing.T) {
	t.Parallel()

	days, plan, cat := weekOfMeals(t)
	swapped, err := Swap(days, 2, 10)
	require.NoError(t, err)

	fresh, err := Regenerate(swapped, plan, cat, soloProfile(), monday)
	require.NoError(t, err)
	require.Len(t, fresh, 365)

	assert.True(t, fresh[2].Locked)
	assert.True(t, fresh[2].IsFreeDay)
	assert.True(t, fresh[10].Locked)
	assert.Equal(t, productAt(t, swapped, 10), productAt(t, fresh, 10))
	for i := range fresh {
		if i == 2 || i == 10 {
			continue
		}
		assert.Equalf(t, days[i], fresh[i], "day %d", i)
	}
}

func TestRegenerateIgnoresLocksOutsideNewYear(t *testing.T) {
	t.Parallel()

	days, plan, cat := weekOfMeals(t)
	swapped, err := Swap(days, 0, 3)
	require.NoError(t, err)

	later := monday.AddDate(0, 0, 7)
	fresh, err := Regenerate(swapped, plan, cat, soloProfile(), later)
	require.NoError(t, err)
	assert.Zero(t, Summarize(fresh).LockedDays)
}

func TestStartDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"thursday", time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC), time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)},
		{"monday late evening", time.Date(2026, time.January, 5, 23, 59, 0, 0, time.UTC), time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)},
		{"local sunday is utc monday", time.Date(2026, time.January, 4, 22, 0, 0, 0, time.FixedZone("EST", -5*3600)), time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)},
		{"across dst change", time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC), time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NextStartDate(tc.now)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), StartDateAfter(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 0))
}

func TestProfileDigestTracksGeneratorInputs(t *testing.T) {
	t.Parallel()

	base := soloProfile()
	same := base.Clone()
	same.WeeklyBudget = decimal.NewFromInt(250)
	same.Frequencies = household.Frequencies{household.NewSlotKey(enums.SlotGroupBeef, 1): 2}
	assert.Equal(t, ProfileDigest(base), ProfileDigest(same))

	fewerDays := base.Clone()
	fewerDays.ProteinDays[time.Sunday] = false
	assert.NotEqual(t, ProfileDigest(base), ProfileDigest(fewerDays))

	bigger := base.Clone()
	bigger.Adults = 3
	assert.NotEqual(t, ProfileDigest(base), ProfileDigest(bigger))
}

func TestCacheDigestNormalisesStartDate(t *testing.T) {
	t.Parallel()

	late := monday.Add(17 * time.Hour)
	assert.Equal(t, CacheDigest("fp", "prof", monday), CacheDigest("fp", "prof", late))
	assert.NotEqual(t, CacheDigest("fp", "prof", monday), CacheDigest("fp", "prof", monday.AddDate(0, 0, 7)))
	assert.NotEqual(t, CacheDigest("fp", "prof", monday), CacheDigest("fp2", "prof", monday))
}

func TestOverlayLockedLeavesUnlockedDays(t *testing.T) {
	t.Parallel()

	days, _, _ := weekOfMeals(t)
	fresh := make([]Day, len(days))
	copy(fresh, days)
	fresh[1].free()

	out := OverlayLocked(days, fresh)
	assert.True(t, out[1].IsFreeDay)
	assert.False(t, out[1].Locked)
}
