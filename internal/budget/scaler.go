// Package budget rescales slot frequencies toward a weekly budget.
package budget

import (
	"math"

	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/demand"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/shopspring/decimal"
)

const (
	// FrequencyStep is the granularity of weekly frequencies.
	FrequencyStep = 0.25
	// MinFrequency is the floor for a slot that had positive demand.
	MinFrequency = 0.25
	// MaxFrequency caps a single slot's weekly meals.
	MaxFrequency = 2.0
)

var weeksPerYear = decimal.NewFromInt(household.WeeksPerYear)

// Scale multiplies every positive frequency by target×52/current, rounds to the
// nearest quarter and clamps to [MinFrequency, MaxFrequency]. Zero slots stay zero.
// It returns an unchanged copy when the current cost is not positive.
func Scale(freqs household.Frequencies, currentAnnualCost, targetWeekly decimal.Decimal) household.Frequencies {
	out := freqs.Clone()
	if out == nil {
		out = household.Frequencies{}
	}
	if !currentAnnualCost.IsPositive() || targetWeekly.IsNegative() {
		return out
	}

	ratio := targetWeekly.Mul(weeksPerYear).Div(currentAnnualCost).InexactFloat64()
	for k, f := range out {
		if f <= 0 || math.IsNaN(f) {
			continue
		}
		out[k] = scaleOne(f, ratio)
	}
	return out
}

func scaleOne(f, ratio float64) float64 {
	scaled := math.Round(f*ratio/FrequencyStep) * FrequencyStep
	return math.Min(MaxFrequency, math.Max(MinFrequency, scaled))
}

// AutoScaleToBudget computes the profile's current cost and runs a single Scale pass.
func AutoScaleToBudget(profile household.Profile, cat *catalog.Catalog, targetWeekly decimal.Decimal) (household.Frequencies, error) {
	current, err := demand.Calculate(profile, cat)
	if err != nil {
		return nil, err
	}
	return Scale(profile.Frequencies, current.TotalCost, targetWeekly), nil
}

// FitResult is the outcome of an iterative fit.
type FitResult struct {
	Frequencies household.Frequencies `json:"frequencies"`
	AnnualCost  decimal.Decimal       `json:"annualCost"`
	TargetCost  decimal.Decimal       `json:"targetCost"`
	Passes      int                   `json:"passes"`
}

// Fit repeats demand + Scale until frequencies stop changing or maxPasses is
// reached, and returns the pass whose annual cost is closest to target×52.
// Later passes only move slots that the earlier clamps left room for.
func Fit(profile household.Profile, cat *catalog.Catalog, targetWeekly decimal.Decimal, maxPasses int) (FitResult, error) {
	if maxPasses < 1 {
		maxPasses = 1
	}
	target := targetWeekly.Mul(weeksPerYear)

	current := profile.Clone()
	start, err := demand.Calculate(current, cat)
	if err != nil {
		return FitResult{}, err
	}
	best := FitResult{
		Frequencies: current.Frequencies.Clone(),
		AnnualCost:  start.TotalCost,
		TargetCost:  target,
	}
	if !start.TotalCost.IsPositive() {
		return best, nil
	}

	bestGap := decimal.Decimal{}
	haveBest := false
	cost := start.TotalCost
	for pass := 1; pass <= maxPasses; pass++ {
		next := Scale(current.Frequencies, cost, targetWeekly)
		if pass > 1 && sameFrequencies(next, current.Frequencies) {
			break
		}
		current.Frequencies = next
		res, err := demand.Calculate(current, cat)
		if err != nil {
			return FitResult{}, err
		}
		cost = res.TotalCost

		gap := cost.Sub(target).Abs()
		if !haveBest || gap.LessThan(bestGap) {
			best = FitResult{Frequencies: next.Clone(), AnnualCost: cost, TargetCost: target, Passes: pass}
			bestGap = gap
			haveBest = true
		}
		if !cost.IsPositive() {
			break
		}
	}
	return best, nil
}

func sameFrequencies(a, b household.Frequencies) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
