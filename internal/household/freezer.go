package household

import "math"

// Freezer describes the household's cold storage.
type Freezer struct {
	FridgeCuFt       float64 `json:"fridgeCuFt"`
	FridgeEfficiency float64 `json:"fridgeEfficiency"`
	ChestCuFt        float64 `json:"chestCuFt"`
	ChestEfficiency  float64 `json:"chestEfficiency"`
}

// DefaultFreezer is a typical fridge-top freezer with no chest freezer.
func DefaultFreezer() Freezer {
	return Freezer{FridgeCuFt: 4, FridgeEfficiency: 0.7, ChestCuFt: 0, ChestEfficiency: 0.85}
}

// UsableCuFt returns Σ(capacity × efficiency), never negative.
func (f Freezer) UsableCuFt() float64 {
	return usable(f.FridgeCuFt, f.FridgeEfficiency) + usable(f.ChestCuFt, f.ChestEfficiency)
}

func usable(capacity, efficiency float64) float64 {
	if math.IsNaN(capacity) || math.IsNaN(efficiency) || capacity <= 0 || efficiency <= 0 {
		return 0
	}
	return capacity * math.Min(efficiency, 1)
}
