package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// WeekMask stores seven weekday flags, Sunday first, as a "1011111" string column.
type WeekMask [7]bool

func (m *WeekMask) Scan(src any) error {
	if src == nil {
		*m = WeekMask{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return m.parseFromString(v)
	case []byte:
		return m.parseFromString(string(v))
	default:
		return fmt.Errorf("WeekMask: unsupported Scan type %T", src)
	}
}

func (m WeekMask) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m WeekMask) String() string {
	var b strings.Builder
	for _, on := range m {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (m *WeekMask) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*m = WeekMask{}
		return nil
	}
	if len(s) != len(m) {
		return fmt.Errorf("WeekMask: %q must have %d flags", s, len(m))
	}
	var out WeekMask
	for i, c := range s {
		switch c {
		case '1':
			out[i] = true
		case '0':
		default:
			return fmt.Errorf("WeekMask: invalid flag %q in %q", c, s)
		}
	}
	*m = out
	return nil
}
