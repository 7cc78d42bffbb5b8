// Package calendar assigns purchased stock to the days of a planning year.
package calendar

import (
	"math"
	"sort"
	"time"

	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
)

const (
	groundTexture  = "ground"
	groundLookback = 3
)

// Generator builds calendars with a pluggable ordering function.
type Generator struct {
	rng Seeded
}

// NewGenerator returns a generator; a nil rng selects SplitMix.
func NewGenerator(rng Seeded) *Generator {
	if rng == nil {
		rng = SplitMix{}
	}
	return &Generator{rng: rng}
}

// Generate uses the default generator.
func Generate(plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time) ([]Day, error) {
	return NewGenerator(nil).Generate(plan, cat, profile, start)
}

// stock is one delivery's remaining meals by consumption type.
type stock map[enums.ConsumptionType][]catalog.Product

func (s stock) empty() bool {
	for _, entries := range s {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// Generate returns exactly 365 days starting at the UTC date of start.
// Identical inputs always produce identical calendars.
func (g *Generator) Generate(plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time) ([]Day, error) {
	if err := catalog.Require(cat); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	start = utcDate(start)
	deliveries := g.stockByDelivery(plan, cat, profile, start)
	mealsCap := profile.MealsCap()

	days := make([]Day, household.DaysPerYear)
	history := make([]*catalog.Product, household.DaysPerYear)
	active := 0
	weekCount := 0

	for i := range days {
		date := start.AddDate(0, 0, i)
		day := &days[i]
		day.Date = date
		if date.Weekday() == time.Monday {
			weekCount = 0
		}

		if i == 0 || (active > 0 && deliveries[active].empty()) {
			if next := nextDelivery(deliveries, active); next > 0 {
				active = next
				day.IsDeliveryDay = true
				day.DeliveryIndex = next
			}
		}

		eating := profile.ProteinDays.On(date.Weekday()) && weekCount < mealsCap
		if !eating || active == 0 {
			day.free()
			continue
		}

		var prev *catalog.Product
		if i > 0 {
			prev = history[i-1]
		}
		groundRecently := false
		for back := 1; back <= groundLookback && i-back >= 0; back++ {
			if p := history[i-back]; p != nil && p.NormalizedTexture() == groundTexture {
				groundRecently = true
			}
		}

		meal, ok := take(deliveries[active], date.Weekday(), prev, groundRecently)
		if !ok {
			day.free()
			continue
		}
		day.assign(meal.ID)
		history[i] = &meal
		weekCount++
	}
	return days, nil
}

// stockByDelivery expands each delivery into per-meal entries, indexed 1..DeliveryCount.
func (g *Generator) stockByDelivery(plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time) []stock {
	deliveries := make([]stock, cart.DeliveryCount+1)
	avg := profile.GramsPerMeal()
	startDay := start.Unix() / int64(24*time.Hour/time.Second)

	for idx := 1; idx <= cart.DeliveryCount; idx++ {
		s := stock{}
		keys := map[string]float64{}
		for _, line := range plan.Lines {
			qty := line.Quantities.Get(idx)
			if qty <= 0 || avg <= 0 {
				continue
			}
			p, ok := cat.Get(line.ProductID)
			if !ok || !p.IsMeal() {
				continue
			}
			meals := int(math.Floor(p.PackageWeightGrams * float64(qty) / avg))
			if meals <= 0 {
				continue
			}
			id := p.ID.String()
			keys[id] = g.rng.Float64(sortSeed(startDay, idx, id))
			ct := p.EffectiveConsumptionType()
			for n := 0; n < meals; n++ {
				s[ct] = append(s[ct], p)
			}
		}
		for _, entries := range s {
			sort.SliceStable(entries, func(a, b int) bool {
				ida, idb := entries[a].ID.String(), entries[b].ID.String()
				if keys[ida] != keys[idb] {
					return keys[ida] < keys[idb]
				}
				return ida < idb
			})
		}
		deliveries[idx] = s
	}
	return deliveries
}

func nextDelivery(deliveries []stock, after int) int {
	for idx := after + 1; idx < len(deliveries); idx++ {
		if !deliveries[idx].empty() {
			return idx
		}
	}
	return 0
}

// bucketOrder lists the buckets to try for a weekday, preferred first.
func bucketOrder(day time.Weekday) []enums.ConsumptionType {
	switch day {
	case time.Sunday:
		return []enums.ConsumptionType{enums.ConsumptionTypeRoast, enums.ConsumptionTypeQuick, enums.ConsumptionTypeStaple}
	case time.Friday, time.Saturday:
		return []enums.ConsumptionType{enums.ConsumptionTypeQuick, enums.ConsumptionTypeStaple, enums.ConsumptionTypeRoast}
	default:
		return []enums.ConsumptionType{enums.ConsumptionTypeStaple, enums.ConsumptionTypeQuick, enums.ConsumptionTypeRoast}
	}
}

// take removes and returns the next meal from s for the given weekday.
func take(s stock, day time.Weekday, prev *catalog.Product, groundRecently bool) (catalog.Product, bool) {
	for _, ct := range bucketOrder(day) {
		entries := s[ct]
		if len(entries) == 0 {
			continue
		}
		pick := 0
		for i, p := range entries {
			if varied(p, prev, groundRecently) {
				pick = i
				break
			}
		}
		meal := entries[pick]
		s[ct] = append(entries[:pick:pick], entries[pick+1:]...)
		return meal, true
	}
	return catalog.Product{}, false
}

func varied(p catalog.Product, prev *catalog.Product, groundRecently bool) bool {
	texture := p.NormalizedTexture()
	if groundRecently && texture == groundTexture {
		return false
	}
	if prev == nil {
		return true
	}
	if p.Category == prev.Category {
		return false
	}
	if texture != "" && texture == prev.NormalizedTexture() {
		return false
	}
	return true
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
