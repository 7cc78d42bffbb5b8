package household

import (
	"fmt"
	"math"
	"time"

	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	// TeenPortionWeight is the share of an adult portion eaten by a teen.
	TeenPortionWeight = 0.75
	// ChildPortionWeight is the share of an adult portion eaten by a child.
	ChildPortionWeight = 0.5

	DaysPerYear  = 365
	WeeksPerYear = 52

	defaultGramsPerPerson = 150
	defaultMealsPerWeek   = 7
)

// ProteinDays flags the weekdays on which a protein meal is served, indexed by time.Weekday.
type ProteinDays [7]bool

// On reports whether the weekday is a protein day.
func (d ProteinDays) On(day time.Weekday) bool {
	if day < time.Sunday || day > time.Saturday {
		return false
	}
	return d[day]
}

// AllProteinDays enables every weekday.
func AllProteinDays() ProteinDays {
	return ProteinDays{true, true, true, true, true, true, true}
}

// Profile is the household state read by the planning engine.
type Profile struct {
	Adults                int             `json:"adults"`
	Teens                 int             `json:"teens"`
	Children              int             `json:"children"`
	GramsPerPerson        float64         `json:"gramsPerPerson"`
	RestaurantDaysPerYear int             `json:"restaurantFrequency"`
	CustodyFactor         *float64        `json:"custodyFactor,omitempty"`
	Frequencies           Frequencies     `json:"frequencies"`
	Selections            Selections      `json:"selections"`
	ProteinDays           ProteinDays     `json:"proteinDays"`
	MealsPerWeek          int             `json:"mealsPerWeek"`
	WeeklyBudget          decimal.Decimal `json:"weeklyBudget"`
}

// NewProfile returns a fresh profile with no slot customizations.
func NewProfile() Profile {
	return Profile{
		Adults:         2,
		GramsPerPerson: defaultGramsPerPerson,
		Frequencies:    Frequencies{},
		Selections:     Selections{},
		ProteinDays:    AllProteinDays(),
		MealsPerWeek:   defaultMealsPerWeek,
	}
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	out.Frequencies = p.Frequencies.Clone()
	out.Selections = p.Selections.Clone()
	if p.CustodyFactor != nil {
		f := *p.CustodyFactor
		out.CustodyFactor = &f
	}
	return out
}

// Custody returns the shared-custody multiplier applied to teens and children, clamped to [0,1].
func (p Profile) Custody() float64 {
	if p.CustodyFactor == nil {
		return 1
	}
	return clamp(*p.CustodyFactor, 0, 1)
}

// Portions returns adult-equivalent portions per meal.
func (p Profile) Portions() float64 {
	custody := p.Custody()
	return float64(nonNegative(p.Adults)) +
		float64(nonNegative(p.Teens))*TeenPortionWeight*custody +
		float64(nonNegative(p.Children))*ChildPortionWeight*custody
}

// GramsPerMeal returns the protein weight the household eats per meal.
func (p Profile) GramsPerMeal() float64 {
	return p.Portions() * math.Max(0, p.GramsPerPerson)
}

// EffectiveDays returns the number of days per year cooked at home.
func (p Profile) EffectiveDays() int {
	days := DaysPerYear - nonNegative(p.RestaurantDaysPerYear)
	if days < 0 {
		return 0
	}
	return days
}

// CoverageRatio returns the fraction of the year cooked at home.
func (p Profile) CoverageRatio() float64 {
	return float64(p.EffectiveDays()) / DaysPerYear
}

// Frequency returns the clamped weekly frequency of a slot.
func (p Profile) Frequency(key SlotKey) float64 {
	f := p.Frequencies[key]
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}

// Selection returns the product chosen for a slot.
func (p Profile) Selection(key SlotKey) (uuid.UUID, bool) {
	id, ok := p.Selections[key]
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// ActiveSlots returns slots with a positive frequency in stable order.
func (p Profile) ActiveSlots() []SlotKey {
	keys := make([]SlotKey, 0, len(p.Frequencies))
	for _, k := range p.Frequencies.Keys() {
		if p.Frequency(k) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// MealsCap returns the weekly meal cap, clamped to [0,7].
func (p Profile) MealsCap() int {
	if p.MealsPerWeek < 0 {
		return 0
	}
	if p.MealsPerWeek > 7 {
		return 7
	}
	return p.MealsPerWeek
}

// Validate reports structural problems that indicate a caller bug. Out-of-range
// counts are not errors; the engine clamps them.
func (p Profile) Validate() error {
	var errs error
	for k, f := range p.Frequencies {
		if !k.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("frequency slot %q is invalid", k.String()))
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			errs = multierr.Append(errs, fmt.Errorf("frequency for %s is not finite", k.String()))
		}
	}
	for k := range p.Selections {
		if !k.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("selection slot %q is invalid", k.String()))
		}
	}
	if math.IsNaN(p.GramsPerPerson) || math.IsInf(p.GramsPerPerson, 0) {
		errs = multierr.Append(errs, fmt.Errorf("gramsPerPerson is not finite"))
	}
	if p.CustodyFactor != nil && (math.IsNaN(*p.CustodyFactor) || math.IsInf(*p.CustodyFactor, 0)) {
		errs = multierr.Append(errs, fmt.Errorf("custodyFactor is not finite"))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid household profile").
			WithDetails(map[string]any{"errors": errorStrings(errs)})
	}
	return nil
}

// HasExistingCustomizations reports whether applying a persona would overwrite
// user state: at least one active slot and at least one product selection.
func HasExistingCustomizations(p Profile) bool {
	active := false
	for k := range p.Frequencies {
		if p.Frequency(k) > 0 {
			active = true
			break
		}
	}
	if !active {
		return false
	}
	for k := range p.Selections {
		if _, ok := p.Selection(k); ok {
			return true
		}
	}
	return false
}

func errorStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
