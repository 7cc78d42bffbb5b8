// Package purchase turns annual demand into whole boxes spread over the year's deliveries.
package purchase

import (
	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/demand"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineSummary explains how one slot turned into boxes.
type LineSummary struct {
	Slot        household.SlotKey `json:"slot"`
	ProductID   uuid.UUID         `json:"productId"`
	AnnualGrams float64           `json:"annualGrams"`
	BoxCount    int               `json:"boxCount"`
	Quantities  cart.Quantities   `json:"quantities"`
	Cost        decimal.Decimal   `json:"cost"`
}

// Result is the built plan and its projected cost.
type Result struct {
	Plan      cart.Plan       `json:"plan"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Lines     []LineSummary   `json:"lines"`
}

// Split distributes boxes over the deliveries: each gets boxes/4 and the first
// boxes%4 deliveries get one more.
func Split(boxes int) cart.Quantities {
	var q cart.Quantities
	if boxes <= 0 {
		return q
	}
	base := boxes / cart.DeliveryCount
	remainder := boxes % cart.DeliveryCount
	for i := range q {
		q[i] = base
		if i < remainder {
			q[i]++
		}
	}
	return q
}

// Build creates a fresh plan from the profile's active slots.
func Build(profile household.Profile, cat *catalog.Catalog) (Result, error) {
	return BuildInto(cart.Plan{}, profile, cat)
}

// BuildInto merges the profile's demand into a copy of existing. Lines already in
// the plan keep their provenance; new lines are tagged system optimized.
// Unavailable or missing products are skipped.
func BuildInto(existing cart.Plan, profile household.Profile, cat *catalog.Catalog) (Result, error) {
	if err := catalog.Require(cat); err != nil {
		return Result{}, err
	}
	if err := existing.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Plan:      existing.Clone(),
		TotalCost: decimal.Zero,
		Lines:     make([]LineSummary, 0),
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

		grams := demand.AnnualGrams(profile, profile.Frequency(key))
		boxes := demand.BoxCount(grams, product.PackageWeightGrams)
		if boxes == 0 {
			continue
		}
		quantities := Split(boxes)
		cost := product.EffectivePrice().Mul(decimal.NewFromInt(int64(boxes)))

		res.Plan.Add(product.ID, quantities, enums.LineSourceSystemOptimized)
		res.TotalCost = res.TotalCost.Add(cost)
		res.Lines = append(res.Lines, LineSummary{
			Slot:        key,
			ProductID:   product.ID,
			AnnualGrams: grams,
			BoxCount:    boxes,
			Quantities:  quantities,
			Cost:        cost,
		})
	}
	res.Plan.Cleanup()
	return res, nil
}
