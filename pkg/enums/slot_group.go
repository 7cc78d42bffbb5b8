package enums

import "fmt"

// SlotGroup names a family of preference slots. Values are part of the persisted slot key format.
type SlotGroup string

const (
	SlotGroupBeef    SlotGroup = "boeuf"
	SlotGroupPoultry SlotGroup = "volaille"
	SlotGroupPork    SlotGroup = "porc"
	SlotGroupFish    SlotGroup = "poisson"
	SlotGroupExtra   SlotGroup = "extra"
)

var validSlotGroups = []SlotGroup{
	SlotGroupBeef,
	SlotGroupPoultry,
	SlotGroupPork,
	SlotGroupFish,
	SlotGroupExtra,
}

// SlotGroups returns every slot group in display order.
func SlotGroups() []SlotGroup {
	out := make([]SlotGroup, len(validSlotGroups))
	copy(out, validSlotGroups)
	return out
}

// String implements fmt.Stringer.
func (g SlotGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is a known SlotGroup.
func (g SlotGroup) IsValid() bool {
	for _, candidate := range validSlotGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// Categories lists the catalog categories a slot group draws products from.
func (g SlotGroup) Categories() []ProductCategory {
	switch g {
	case SlotGroupBeef:
		return []ProductCategory{ProductCategoryBeef}
	case SlotGroupPoultry:
		return []ProductCategory{ProductCategoryPoultry}
	case SlotGroupPork:
		return []ProductCategory{ProductCategoryPork}
	case SlotGroupFish:
		return []ProductCategory{ProductCategoryFishSeafood}
	case SlotGroupExtra:
		return []ProductCategory{ProductCategoryGame, ProductCategoryReadyToEat}
	default:
		return nil
	}
}

// Order returns the display position of the group, or len(groups) when unknown.
func (g SlotGroup) Order() int {
	for i, candidate := range validSlotGroups {
		if candidate == g {
			return i
		}
	}
	return len(validSlotGroups)
}

// ParseSlotGroup converts raw input into a SlotGroup.
func ParseSlotGroup(value string) (SlotGroup, error) {
	for _, candidate := range validSlotGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid slot group %q", value)
}
