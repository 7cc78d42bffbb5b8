package cart

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
)

// PickupItem is one unit moved from a delivery to in-store collection.
type PickupItem struct {
	ProductID     uuid.UUID `json:"productId"`
	DeliveryIndex int       `json:"deliveryIndex"`
}

// PickupList holds one entry per removed unit; duplicates are expected.
type PickupList []PickupItem

// Offload folds the pickup list into a removal delta.
func (l PickupList) Offload() Offload {
	var o Offload
	for _, item := range l {
		o.Add(item.ProductID, item.DeliveryIndex, 1)
	}
	return o
}

// Removal subtracts units of a product from one delivery.
type Removal struct {
	ProductID     uuid.UUID `json:"productId"`
	DeliveryIndex int       `json:"deliveryIndex"`
	Units         int       `json:"units"`
}

// Offload is a set of removals to apply to a plan.
type Offload struct {
	Removals []Removal `json:"removals"`
}

// Add records units to remove, merging with an existing removal of the same product and delivery.
func (o *Offload) Add(productID uuid.UUID, deliveryIndex, units int) {
	for i := range o.Removals {
		r := &o.Removals[i]
		if r.ProductID == productID && r.DeliveryIndex == deliveryIndex {
			r.Units += units
			return
		}
	}
	o.Removals = append(o.Removals, Removal{ProductID: productID, DeliveryIndex: deliveryIndex, Units: units})
}

// TotalUnits returns the number of units removed.
func (o Offload) TotalUnits() int {
	total := 0
	for _, r := range o.Removals {
		total += r.Units
	}
	return total
}

// ApplyOffload returns a new plan with the removals subtracted. p is left untouched.
func (p Plan) ApplyOffload(o Offload) (Plan, error) {
	next := p.Clone()
	for _, r := range o.Removals {
		if !ValidDeliveryIndex(r.DeliveryIndex) {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("delivery index %d out of range", r.DeliveryIndex))
		}
		if r.Units < 0 {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("removal of %d units is negative", r.Units))
		}
		idx := -1
		for i := range next.Lines {
			if next.Lines[i].ProductID == r.ProductID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %s not in plan", r.ProductID))
		}
		have := next.Lines[idx].Quantities[r.DeliveryIndex-1]
		if r.Units > have {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot remove %d units of %s from delivery %d holding %d", r.Units, r.ProductID, r.DeliveryIndex, have))
		}
		next.Lines[idx].Quantities[r.DeliveryIndex-1] = have - r.Units
	}
	next.Cleanup()
	return next, nil
}
