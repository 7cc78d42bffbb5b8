package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// DeliveryCount is the number of bulk deliveries per year.
const DeliveryCount = 4

// Quantities holds per-delivery unit counts, addressed by delivery index 1..4.
type Quantities [DeliveryCount]int

// ValidDeliveryIndex reports whether index addresses a delivery.
func ValidDeliveryIndex(index int) bool {
	return index >= 1 && index <= DeliveryCount
}

// Get returns the quantity for a delivery index, or 0 when out of range.
func (q Quantities) Get(index int) int {
	if !ValidDeliveryIndex(index) {
		return 0
	}
	return q[index-1]
}

// Total returns the units across all deliveries.
func (q Quantities) Total() int {
	total := 0
	for _, n := range q {
		total += n
	}
	return total
}

// IsZero reports whether every delivery is empty.
func (q Quantities) IsZero() bool {
	for _, n := range q {
		if n != 0 {
			return false
		}
	}
	return true
}

// Plus returns the element-wise sum.
func (q Quantities) Plus(other Quantities) Quantities {
	for i := range q {
		q[i] += other[i]
	}
	return q
}

// Less returns the element-wise difference, floored at zero.
func (q Quantities) Less(other Quantities) Quantities {
	for i := range q {
		q[i] = max(q[i]-other[i], 0)
	}
	return q
}

func (q Quantities) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, DeliveryCount)
	for i, n := range q {
		out[strconv.Itoa(i+1)] = n
	}
	return json.Marshal(out)
}

func (q *Quantities) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Quantities
	for k, n := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil || !ValidDeliveryIndex(idx) {
			return fmt.Errorf("invalid delivery index %q", k)
		}
		out[idx-1] = n
	}
	*q = out
	return nil
}

// Line is one product of the plan with its per-delivery quantities.
// Quantities is what gets delivered. Manual is the part the user set by hand,
// as requested before any freezer offload.
type Line struct {
	ProductID  uuid.UUID        `json:"productId"`
	Quantities Quantities       `json:"quantities"`
	Manual     Quantities       `json:"manual"`
	Source     enums.LineSource `json:"source"`
}

// ManualUnits returns the hand-set units of the line. A manual line without an
// explicit split is manual in full.
func (l Line) ManualUnits() Quantities {
	if l.Source == enums.LineSourceManual && l.Manual.IsZero() {
		return l.Quantities
	}
	return l.Manual
}

// SystemUnits returns the units the purchase builder contributed.
func (l Line) SystemUnits() Quantities {
	return l.Quantities.Less(l.ManualUnits())
}

// Plan is the delivery plan (cart). The zero value is an empty plan.
type Plan struct {
	Lines []Line `json:"lines"`
}

// Clone returns a copy that shares no line storage with p.
func (p Plan) Clone() Plan {
	if p.Lines == nil {
		return Plan{}
	}
	lines := make([]Line, len(p.Lines))
	copy(lines, p.Lines)
	return Plan{Lines: lines}
}

// IsEmpty reports whether the plan holds no units.
func (p Plan) IsEmpty() bool {
	for _, l := range p.Lines {
		if l.Quantities.Total() > 0 {
			return false
		}
	}
	return true
}

// Line returns the line for a product.
func (p Plan) Line(productID uuid.UUID) (Line, bool) {
	for _, l := range p.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// TotalUnits returns the number of units across all lines and deliveries.
func (p Plan) TotalUnits() int {
	total := 0
	for _, l := range p.Lines {
		total += l.Quantities.Total()
	}
	return total
}

// DeliveryUnits returns the units scheduled for a delivery index.
func (p Plan) DeliveryUnits(index int) int {
	total := 0
	for _, l := range p.Lines {
		total += l.Quantities.Get(index)
	}
	return total
}

// Add merges quantities into the product's line, creating it with source when absent.
// An existing line keeps its original source.
func (p *Plan) Add(productID uuid.UUID, quantities Quantities, source enums.LineSource) {
	for i := range p.Lines {
		if p.Lines[i].ProductID == productID {
			p.Lines[i].Quantities = p.Lines[i].Quantities.Plus(quantities)
			return
		}
	}
	p.Lines = append(p.Lines, Line{ProductID: productID, Quantities: quantities, Source: source})
}

// SetManual replaces the hand-set units of the product's line and keeps its
// system units. A line left with no system units is tagged manual and a line
// left with no manual units is tagged system optimized. Zero quantities on a
// product without a line are a no-op.
func (p *Plan) SetManual(productID uuid.UUID, manual Quantities) {
	for i := range p.Lines {
		l := &p.Lines[i]
		if l.ProductID != productID {
			continue
		}
		system := l.SystemUnits()
		l.Manual = manual
		l.Quantities = system.Plus(manual)
		switch {
		case system.IsZero():
			l.Source = enums.LineSourceManual
		case manual.IsZero():
			l.Source = enums.LineSourceSystemOptimized
		}
		return
	}
	if manual.IsZero() {
		return
	}
	p.Lines = append(p.Lines, Line{ProductID: productID, Quantities: manual, Manual: manual, Source: enums.LineSourceManual})
}

// ManualPart returns the hand-set units of the plan as manual lines, dropping
// everything the purchase builder contributed.
func (p Plan) ManualPart() Plan {
	out := Plan{}
	for _, l := range p.Lines {
		manual := l.ManualUnits()
		if manual.IsZero() {
			continue
		}
		out.Lines = append(out.Lines, Line{ProductID: l.ProductID, Quantities: manual, Manual: manual, Source: enums.LineSourceManual})
	}
	return out
}

// Cleanup drops lines with no delivered and no hand-set units.
func (p *Plan) Cleanup() {
	var kept []Line
	for _, l := range p.Lines {
		if !l.Quantities.IsZero() || !l.Manual.IsZero() {
			kept = append(kept, l)
		}
	}
	p.Lines = kept
}

// Validate aggregates structural problems of the plan.
func (p Plan) Validate() error {
	var errs error
	seen := make(map[uuid.UUID]struct{}, len(p.Lines))
	for i, l := range p.Lines {
		if l.ProductID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: product id is required", i))
		}
		if _, dup := seen[l.ProductID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("line %d: duplicate product %s", i, l.ProductID))
		}
		seen[l.ProductID] = struct{}{}
		for d, n := range l.Quantities {
			if n < 0 {
				errs = multierr.Append(errs, fmt.Errorf("line %d: delivery %d quantity %d is negative", i, d+1, n))
			}
		}
		for d, n := range l.Manual {
			if n < 0 {
				errs = multierr.Append(errs, fmt.Errorf("line %d: delivery %d manual quantity %d is negative", i, d+1, n))
			}
		}
		if l.Source != "" && !l.Source.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("line %d: invalid source %q", i, l.Source))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid delivery plan").
			WithDetails(map[string]any{"errors": errorStrings(errs)})
	}
	return nil
}

// Fingerprint returns a stable digest of the plan content, independent of line order.
func (p Plan) Fingerprint() string {
	parts := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		if l.Quantities.IsZero() {
			continue
		}
		q := l.Quantities
		parts = append(parts, fmt.Sprintf("%s:%d,%d,%d,%d", l.ProductID, q[0], q[1], q[2], q[3]))
	}
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(sum[:])
}

func errorStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
