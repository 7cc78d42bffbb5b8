package household

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
)

const (
	// SlotKeyPrefix is the persisted prefix of an encoded slot key.
	SlotKeyPrefix = "Custom|"
	// SlotsPerGroup bounds how many preference slots a group exposes.
	SlotsPerGroup = 6

	slotNameSeparator = "_slot_"
)

// SlotKey addresses one preference slot, e.g. the first beef slot.
type SlotKey struct {
	Group enums.SlotGroup
	Index int
}

// NewSlotKey builds a slot key without validation.
func NewSlotKey(group enums.SlotGroup, index int) SlotKey {
	return SlotKey{Group: group, Index: index}
}

// Name returns the bare slot name, e.g. "boeuf_slot_1".
func (k SlotKey) Name() string {
	return fmt.Sprintf("%s%s%d", k.Group, slotNameSeparator, k.Index)
}

// String returns the encoded form, e.g. "Custom|boeuf_slot_1".
func (k SlotKey) String() string {
	return SlotKeyPrefix + k.Name()
}

// IsValid reports whether the group is known and the index is within range.
func (k SlotKey) IsValid() bool {
	return k.Group.IsValid() && k.Index >= 1 && k.Index <= SlotsPerGroup
}

// Less orders slot keys by group display order, then index.
func (k SlotKey) Less(other SlotKey) bool {
	if k.Group != other.Group {
		return k.Group.Order() < other.Group.Order()
	}
	return k.Index < other.Index
}

func (k SlotKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SlotKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSlotKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseSlotKey decodes either the prefixed form or a bare slot name.
func ParseSlotKey(value string) (SlotKey, error) {
	name := strings.TrimPrefix(strings.TrimSpace(value), SlotKeyPrefix)
	idx := strings.LastIndex(name, slotNameSeparator)
	if idx <= 0 {
		return SlotKey{}, fmt.Errorf("invalid slot key %q", value)
	}
	group, err := enums.ParseSlotGroup(name[:idx])
	if err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: %w", value, err)
	}
	n, err := strconv.Atoi(name[idx+len(slotNameSeparator):])
	if err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: index must be numeric", value)
	}
	key := SlotKey{Group: group, Index: n}
	if !key.IsValid() {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: index out of range", value)
	}
	return key, nil
}

// SortSlotKeys sorts keys in place by group order then index.
func SortSlotKeys(keys []SlotKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// GroupSlots returns every slot key of a group in index order.
func GroupSlots(group enums.SlotGroup) []SlotKey {
	out := make([]SlotKey, 0, SlotsPerGroup)
	for i := 1; i <= SlotsPerGroup; i++ {
		out = append(out, SlotKey{Group: group, Index: i})
	}
	return out
}

// Frequencies maps a slot to its weekly meal frequency.
type Frequencies map[SlotKey]float64

// Keys returns the slot keys in stable order.
func (f Frequencies) Keys() []SlotKey {
	keys := make([]SlotKey, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	SortSlotKeys(keys)
	return keys
}

// Clone returns a copy of the map; nil stays nil.
func (f Frequencies) Clone() Frequencies {
	if f == nil {
		return nil
	}
	out := make(Frequencies, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Selections maps a slot to its chosen product. It serialises with bare slot names as keys.
type Selections map[SlotKey]uuid.UUID

// Keys returns the slot keys in stable order.
func (s Selections) Keys() []SlotKey {
	keys := make([]SlotKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	SortSlotKeys(keys)
	return keys
}

// Clone returns a copy of the map; nil stays nil.
func (s Selections) Clone() Selections {
	if s == nil {
		return nil
	}
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s Selections) MarshalJSON() ([]byte, error) {
	raw := make(map[string]uuid.UUID, len(s))
	for k, v := range s {
		raw[k.Name()] = v
	}
	return json.Marshal(raw)
}

func (s *Selections) UnmarshalJSON(data []byte) error {
	var raw map[string]uuid.UUID
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(Selections, len(raw))
	for name, id := range raw {
		key, err := ParseSlotKey(name)
		if err != nil {
			return err
		}
		out[key] = id
	}
	*s = out
	return nil
}
