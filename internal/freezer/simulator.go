// Package freezer simulates a year of freezer occupancy for a delivery plan.
package freezer

import (
	"math"
	"sort"

	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/google/uuid"
)

const (
	LbsPerCubicFoot = 25.0
	LbsPerKg        = 2.20462

	// RefillThreshold triggers the next delivery once volume falls below this share of capacity.
	RefillThreshold = 0.2
	// OverflowTolerance is how far past capacity a delivery may go before offloading.
	OverflowTolerance = 1.1

	volumeEpsilon = 1e-9
)

// Point is the freezer volume at the end of a day.
type Point struct {
	Day           int     `json:"day"`
	Volume        float64 `json:"volume"`
	IsDeliveryDay bool    `json:"isDeliveryDay"`
	DeliveryIndex int     `json:"deliveryIndex,omitempty"`
}

// DeliveryEvent summarises one delivery arrival.
type DeliveryEvent struct {
	Index           int     `json:"index"`
	Day             int     `json:"day"`
	PlannedVolume   float64 `json:"plannedVolume"`
	DeliveredVolume float64 `json:"deliveredVolume"`
	OffloadedVolume float64 `json:"offloadedVolume"`
	OffloadedUnits  int     `json:"offloadedUnits"`
}

// Result is the simulation outcome. Plan is a new plan with the offload applied.
type Result struct {
	CapacityCuFt      float64         `json:"capacityCuFt"`
	TotalVolume       float64         `json:"totalVolume"`
	DailyDrain        float64         `json:"dailyDrain"`
	MaxVolume         float64         `json:"maxVolume"`
	PickupVolume      float64         `json:"pickupVolume"`
	Timeline          []Point         `json:"timeline"`
	Deliveries        []DeliveryEvent `json:"deliveries"`
	PendingDeliveries []int           `json:"pendingDeliveries,omitempty"`
	Pickup            cart.PickupList `json:"pickup"`
	Offload           cart.Offload    `json:"offload"`
	Plan              cart.Plan       `json:"plan"`
}

// UnitVolume returns the cubic feet one package occupies.
func UnitVolume(p catalog.Product) float64 {
	return p.PackageWeightKg() * LbsPerKg / LbsPerCubicFoot
}

// PlanVolume returns the cubic feet of every unit in the plan. Unknown products occupy nothing.
func PlanVolume(plan cart.Plan, cat *catalog.Catalog) float64 {
	total := 0.0
	for _, l := range plan.Lines {
		if p, ok := cat.Get(l.ProductID); ok {
			total += UnitVolume(p) * float64(l.Quantities.Total())
		}
	}
	return total
}

type unit struct {
	productID uuid.UUID
	weight    float64
	volume    float64
	qty       int
}

// Simulate walks 365 days draining total/365 cubic feet per day. A delivery
// arrives on day 1 and whenever the volume drops below RefillThreshold of
// capacity. Deliveries without units are skipped. When a delivery would exceed
// capacity×OverflowTolerance, units move to the pickup list heaviest first
// until the excess over capacity is covered. plan is not modified.
func Simulate(plan cart.Plan, cat *catalog.Catalog, usableCuFt float64) (Result, error) {
	if err := catalog.Require(cat); err != nil {
		return Result{}, err
	}
	if err := plan.Validate(); err != nil {
		return Result{}, err
	}
	capacity := usableCuFt
	if math.IsNaN(capacity) || capacity < 0 {
		capacity = 0
	}

	total := PlanVolume(plan, cat)
	res := Result{
		CapacityCuFt: capacity,
		TotalVolume:  total,
		DailyDrain:   total / household.DaysPerYear,
		Timeline:     make([]Point, 0, household.DaysPerYear),
		Deliveries:   make([]DeliveryEvent, 0, cart.DeliveryCount),
		Pickup:       cart.PickupList{},
	}

	current := 0.0
	next := 1
	for day := 1; day <= household.DaysPerYear; day++ {
		current = math.Max(0, current-res.DailyDrain)
		for next <= cart.DeliveryCount && plan.DeliveryUnits(next) == 0 {
			next++
		}

		if next <= cart.DeliveryCount && (day == 1 || current < RefillThreshold*capacity) {
			units := deliveryUnits(plan, cat, next)
			planned := unitsVolume(units)
			event := DeliveryEvent{Index: next, Day: day, PlannedVolume: planned}

			if current+planned > capacity*OverflowTolerance {
				needed := current + planned - capacity
				for i := range units {
					u := &units[i]
					if u.volume <= 0 {
						continue
					}
					for u.qty > 0 && needed > volumeEpsilon {
						u.qty--
						needed -= u.volume
						event.OffloadedUnits++
						res.Pickup = append(res.Pickup, cart.PickupItem{ProductID: u.productID, DeliveryIndex: next})
					}
					if needed <= volumeEpsilon {
						break
					}
				}
			}

			event.DeliveredVolume = unitsVolume(units)
			event.OffloadedVolume = planned - event.DeliveredVolume
			res.PickupVolume += event.OffloadedVolume
			current += event.DeliveredVolume
			res.Deliveries = append(res.Deliveries, event)
			res.Timeline = append(res.Timeline, Point{Day: day, Volume: current, IsDeliveryDay: true, DeliveryIndex: next})
			next++
		} else {
			res.Timeline = append(res.Timeline, Point{Day: day, Volume: current})
		}
		res.MaxVolume = math.Max(res.MaxVolume, current)
	}
	for ; next <= cart.DeliveryCount; next++ {
		if plan.DeliveryUnits(next) > 0 {
			res.PendingDeliveries = append(res.PendingDeliveries, next)
		}
	}

	res.Offload = res.Pickup.Offload()
	adjusted, err := plan.ApplyOffload(res.Offload)
	if err != nil {
		return Result{}, err
	}
	res.Plan = adjusted
	return res, nil
}

// deliveryUnits lists the delivery's units heaviest package first, ties by product id.
func deliveryUnits(plan cart.Plan, cat *catalog.Catalog, index int) []unit {
	units := make([]unit, 0, len(plan.Lines))
	for _, l := range plan.Lines {
		qty := l.Quantities.Get(index)
		if qty <= 0 {
			continue
		}
		p, ok := cat.Get(l.ProductID)
		if !ok {
			continue
		}
		units = append(units, unit{
			productID: p.ID,
			weight:    p.PackageWeightGrams,
			volume:    UnitVolume(p),
			qty:       qty,
		})
	}
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].weight != units[j].weight {
			return units[i].weight > units[j].weight
		}
		return units[i].productID.String() < units[j].productID.String()
	})
	return units
}

func unitsVolume(units []unit) float64 {
	total := 0.0
	for _, u := range units {
		total += u.volume * float64(u.qty)
	}
	return total
}
