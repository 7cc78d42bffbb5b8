// Package demand converts household habits into annual weight and cost targets.
package demand

import (
	"math"

	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SmallBoxThreshold is the fractional box count above which a zero-box slot still buys one box.
const SmallBoxThreshold = 0.4

// SlotDemand is the annual demand of a single active slot.
type SlotDemand struct {
	Slot        household.SlotKey `json:"slot"`
	ProductID   uuid.UUID         `json:"productId"`
	Frequency   float64           `json:"frequency"`
	AnnualMeals float64           `json:"annualMeals"`
	AnnualGrams float64           `json:"annualGrams"`
	AnnualKg    float64           `json:"annualKg"`
	BoxCount    int               `json:"boxCount"`
	Cost        decimal.Decimal   `json:"cost"`
	ExactCost   decimal.Decimal   `json:"exactCost"`
}

// Result aggregates slot demand over the year.
type Result struct {
	Slots           []SlotDemand    `json:"slots"`
	Portions        float64         `json:"portions"`
	CoveragePercent float64         `json:"coveragePercent"`
	TotalKg         float64         `json:"totalKg"`
	TotalMeals      float64         `json:"totalMeals"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalExactCost  decimal.Decimal `json:"totalExactCost"`
}

// Slot returns the demand of one slot.
func (r Result) Slot(key household.SlotKey) (SlotDemand, bool) {
	for _, s := range r.Slots {
		if s.Slot == key {
			return s, true
		}
	}
	return SlotDemand{}, false
}

// AnnualGrams returns the yearly protein weight a slot frequency represents for the profile.
func AnnualGrams(profile household.Profile, frequency float64) float64 {
	if frequency <= 0 || math.IsNaN(frequency) {
		return 0
	}
	meals := AnnualMeals(profile, frequency)
	return meals * profile.GramsPerMeal()
}

// AnnualMeals returns frequency × 52 × coverage.
func AnnualMeals(profile household.Profile, frequency float64) float64 {
	if frequency <= 0 || math.IsNaN(frequency) {
		return 0
	}
	return frequency * household.WeeksPerYear * profile.CoverageRatio()
}

// BoxCount converts a weight into whole packages: floor, except a lone package
// is bought when the fraction exceeds SmallBoxThreshold.
func BoxCount(grams, packageGrams float64) int {
	if grams <= 0 || packageGrams <= 0 {
		return 0
	}
	exact := grams / packageGrams
	boxes := int(math.Floor(exact))
	if boxes == 0 && exact > SmallBoxThreshold {
		return 1
	}
	return boxes
}

// Calculate computes annual demand for every active slot with an available selection.
// Slots whose product is missing or unavailable are skipped.
func Calculate(profile household.Profile, cat *catalog.Catalog) (Result, error) {
	if err := catalog.Require(cat); err != nil {
		return Result{}, err
	}

	res := Result{
		Slots:           make([]SlotDemand, 0),
		Portions:        profile.Portions(),
		CoveragePercent: profile.CoverageRatio() * 100,
		TotalCost:       decimal.Zero,
		TotalExactCost:  decimal.Zero,
	}

	for _, key := range profile.ActiveSlots() {
		productID, ok := profile.Selection(key)
		if !ok {
			continue
		}
		product, ok := cat.Get(productID)
		if !ok || !product.Available {
			continue
		}

		freq := profile.Frequency(key)
		meals := AnnualMeals(profile, freq)
		grams := meals * profile.GramsPerMeal()
		kg := grams / 1000
		boxes := BoxCount(grams, product.PackageWeightGrams)

		slot := SlotDemand{
			Slot:        key,
			ProductID:   productID,
			Frequency:   freq,
			AnnualMeals: meals,
			AnnualGrams: grams,
			AnnualKg:    kg,
			BoxCount:    boxes,
			Cost:        product.EffectivePrice().Mul(decimal.NewFromInt(int64(boxes))),
			ExactCost:   product.PricePerKg().Mul(decimal.NewFromFloat(kg)).Round(2),
		}
		res.Slots = append(res.Slots, slot)
		res.TotalKg += kg
		res.TotalMeals += meals
		res.TotalCost = res.TotalCost.Add(slot.Cost)
		res.TotalExactCost = res.TotalExactCost.Add(slot.ExactCost)
	}
	return res, nil
}
