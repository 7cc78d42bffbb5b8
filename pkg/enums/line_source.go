package enums

import "fmt"

// LineSource records where a delivery plan line came from.
type LineSource string

const (
	LineSourceSystemOptimized LineSource = "system_optimized"
	LineSourceManual          LineSource = "manual"
)

var validLineSources = []LineSource{
	LineSourceSystemOptimized,
	LineSourceManual,
}

// String implements fmt.Stringer.
func (s LineSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LineSource.
func (s LineSource) IsValid() bool {
	for _, candidate := range validLineSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLineSource converts raw input into a LineSource.
func ParseLineSource(value string) (LineSource, error) {
	for _, candidate := range validLineSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line source %q", value)
}
