package enums

import "fmt"

// PersonaID identifies a built-in household persona template.
type PersonaID string

const (
	PersonaFamilyBudget      PersonaID = "family_budget"
	PersonaPremiumGastronome PersonaID = "premium_gastronome"
	PersonaAthleteProtein    PersonaID = "athlete_protein"
	PersonaQuickAndEasy      PersonaID = "quick_and_easy"
)

var validPersonaIDs = []PersonaID{
	PersonaFamilyBudget,
	PersonaPremiumGastronome,
	PersonaAthleteProtein,
	PersonaQuickAndEasy,
}

// String implements fmt.Stringer.
func (p PersonaID) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PersonaID.
func (p PersonaID) IsValid() bool {
	for _, candidate := range validPersonaIDs {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePersonaID converts raw input into a PersonaID.
func ParsePersonaID(value string) (PersonaID, error) {
	for _, candidate := range validPersonaIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid persona %q", value)
}
