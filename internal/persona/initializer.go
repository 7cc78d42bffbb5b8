// Package persona bulk-initializes household slots from named templates.
package persona

import (
	"fmt"
	"sort"

	"github.com/angelmondragon/freezerplan-backend/internal/budget"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/demand"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the profile produced by applying a persona.
type Result struct {
	Persona      enums.PersonaID   `json:"persona"`
	Profile      household.Profile `json:"profile"`
	WeeklyBudget decimal.Decimal   `json:"weeklyBudget"`
	Demand       demand.Result     `json:"demand"`
	Scaled       bool              `json:"scaled"`
}

// Apply overwrites every slot frequency and rule-driven selection of profile with
// the persona's choices, then scales once toward the persona budget. The input
// profile is not modified. Callers gate this with household.HasExistingCustomizations.
func Apply(id enums.PersonaID, cat *catalog.Catalog, profile household.Profile) (Result, error) {
	if err := catalog.Require(cat); err != nil {
		return Result{}, err
	}
	tpl, ok := Lookup(id)
	if !ok {
		return Result{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("persona %q not found", id))
	}

	out := profile.Clone()
	out.Frequencies = household.Frequencies{}
	if out.Selections == nil {
		out.Selections = household.Selections{}
	}
	used := make(map[uuid.UUID]struct{})

	for _, group := range enums.SlotGroups() {
		for _, key := range household.GroupSlots(group) {
			out.Frequencies[key] = 0
		}

		candidates := candidatesFor(cat, group, tpl.PreferStaple)
		for i, r := range tpl.Rules[group] {
			if i >= household.SlotsPerGroup {
				break
			}
			key := household.NewSlotKey(group, i+1)
			product, ok := pick(candidates, r.Keywords, used)
			if !ok {
				continue
			}
			used[product.ID] = struct{}{}
			out.Selections[key] = product.ID
			out.Frequencies[key] = r.WeeklyFrequency
		}
	}
	out.WeeklyBudget = tpl.WeeklyBudget

	res, err := demand.Calculate(out, cat)
	if err != nil {
		return Result{}, err
	}
	scaled := false
	if res.TotalCost.IsPositive() {
		out.Frequencies = budget.Scale(out.Frequencies, res.TotalCost, tpl.WeeklyBudget)
		if res, err = demand.Calculate(out, cat); err != nil {
			return Result{}, err
		}
		scaled = true
	}

	return Result{
		Persona:      tpl.ID,
		Profile:      out,
		WeeklyBudget: tpl.WeeklyBudget,
		Demand:       res,
		Scaled:       scaled,
	}, nil
}

// candidatesFor returns available products of the group in catalog order,
// stable-sorted staples first when preferStaple is set.
func candidatesFor(cat *catalog.Catalog, group enums.SlotGroup, preferStaple bool) []catalog.Product {
	all := cat.ByCategory(group.Categories()...)
	out := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if p.Available {
			out = append(out, p)
		}
	}
	if preferStaple {
		sort.SliceStable(out, func(i, j int) bool {
			return isStaple(out[i]) && !isStaple(out[j])
		})
	}
	return out
}

func isStaple(p catalog.Product) bool {
	return p.EffectiveConsumptionType() == enums.ConsumptionTypeStaple
}

// pick returns the first unused candidate, in catalog order, whose name matches
// any keyword, and falls back to the first unused candidate.
func pick(candidates []catalog.Product, keywords []string, used map[uuid.UUID]struct{}) (catalog.Product, bool) {
	for _, p := range candidates {
		if _, taken := used[p.ID]; taken {
			continue
		}
		for _, kw := range keywords {
			if p.NameContains(kw) {
				return p, true
			}
		}
	}
	for _, p := range candidates {
		if _, taken := used[p.ID]; !taken {
			return p, true
		}
	}
	return catalog.Product{}, false
}
