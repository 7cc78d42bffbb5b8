package calendar

// Seeded maps an integer seed to a reproducible value in [0,1).
// Calendar ordering depends on it, so implementations must be pure.
type Seeded interface {
	Float64(seed int64) float64
}

// SplitMix is the default Seeded implementation, a splitmix64 finaliser.
type SplitMix struct{}

func (SplitMix) Float64(seed int64) float64 {
	z := uint64(seed) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}

func charSum(s string) int64 {
	var sum int64
	for _, r := range s {
		sum += int64(r)
	}
	return sum
}

// sortSeed keys the shuffle by start day plus delivery index and by the product id's character sum.
func sortSeed(startDay int64, deliveryIndex int, productID string) int64 {
	return (startDay+int64(deliveryIndex))<<20 + charSum(productID)
}
