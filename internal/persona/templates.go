package persona

import (
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Rule assigns the first product matching any keyword to a slot at the given weekly frequency.
type Rule struct {
	Keywords        []string `json:"keywords"`
	WeeklyFrequency float64  `json:"weeklyFrequency"`
}

// Template is a named bundle of slot rules and a default weekly budget.
type Template struct {
	ID           enums.PersonaID            `json:"id"`
	Name         string                     `json:"name"`
	WeeklyBudget decimal.Decimal            `json:"weeklyBudget"`
	PreferStaple bool                       `json:"preferStaple"`
	Rules        map[enums.SlotGroup][]Rule `json:"rules"`
}

func rule(freq float64, keywords ...string) Rule {
	return Rule{Keywords: keywords, WeeklyFrequency: freq}
}

var templates = []Template{
	{
		ID:           enums.PersonaFamilyBudget,
		Name:         "Family Budget",
		WeeklyBudget: decimal.NewFromInt(120),
		PreferStaple: true,
		Rules: map[enums.SlotGroup][]Rule{
			enums.SlotGroupBeef: {
				rule(1.5, "ground", "minced"),
				rule(0.75, "stew", "cubes"),
				rule(0.5, "pot roast", "roast"),
			},
			enums.SlotGroupPoultry: {
				rule(1, "thigh", "drumstick"),
				rule(1, "chicken breast", "breast"),
				rule(0.5, "whole chicken"),
			},
			enums.SlotGroupPork: {
				rule(0.75, "ground pork", "sausage"),
				rule(0.5, "chop"),
			},
			enums.SlotGroupFish: {
				rule(0.5, "tilapia", "pollock", "fillet"),
			},
			enums.SlotGroupExtra: {
				rule(0.5, "lasagna", "meatball", "pie"),
			},
		},
	},
	{
		ID:           enums.PersonaPremiumGastronome,
		Name:         "Premium Gastronome",
		WeeklyBudget: decimal.NewFromInt(250),
		Rules: map[enums.SlotGroup][]Rule{
			enums.SlotGroupBeef: {
				rule(1, "ribeye", "striploin"),
				rule(0.5, "tenderloin", "filet mignon"),
				rule(0.25, "prime rib"),
			},
			enums.SlotGroupPoultry: {
				rule(0.5, "duck"),
				rule(0.75, "cornish", "supreme", "breast"),
			},
			enums.SlotGroupPork: {
				rule(0.5, "rack", "tenderloin"),
			},
			enums.SlotGroupFish: {
				rule(0.75, "salmon"),
				rule(0.5, "scallop", "shrimp"),
			},
			enums.SlotGroupExtra: {
				rule(0.5, "bison", "venison", "elk"),
			},
		},
	},
	{
		ID:           enums.PersonaAthleteProtein,
		Name:         "Athlete Protein",
		WeeklyBudget: decimal.NewFromInt(180),
		PreferStaple: true,
		Rules: map[enums.SlotGroup][]Rule{
			enums.SlotGroupBeef: {
				rule(1.5, "extra lean", "lean ground"),
				rule(1, "sirloin"),
			},
			enums.SlotGroupPoultry: {
				rule(2, "chicken breast", "breast"),
				rule(1, "turkey"),
			},
			enums.SlotGroupPork: {
				rule(0.5, "loin", "tenderloin"),
			},
			enums.SlotGroupFish: {
				rule(1, "salmon"),
				rule(0.75, "tuna", "cod"),
			},
		},
	},
	{
		ID:           enums.PersonaQuickAndEasy,
		Name:         "Quick & Easy",
		WeeklyBudget: decimal.NewFromInt(140),
		Rules: map[enums.SlotGroup][]Rule{
			enums.SlotGroupBeef: {
				rule(1, "burger", "patty"),
				rule(0.5, "stir-fry", "strip"),
			},
			enums.SlotGroupPoultry: {
				rule(1, "nugget", "wings", "strips"),
			},
			enums.SlotGroupPork: {
				rule(0.5, "sausage", "bacon"),
			},
			enums.SlotGroupFish: {
				rule(0.5, "breaded", "fish sticks"),
			},
			enums.SlotGroupExtra: {
				rule(1, "lasagna", "pizza", "pie", "meal"),
			},
		},
	},
}

// Templates returns the built-in persona templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup returns the template with the given id.
func Lookup(id enums.PersonaID) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
