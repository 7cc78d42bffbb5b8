package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
)

// Swap returns a copy of days with the meal state of a and b exchanged and both pinned.
// Delivery markers stay on their dates.
func Swap(days []Day, a, b int) ([]Day, error) {
	for _, idx := range []int{a, b} {
		if idx < 0 || idx >= len(days) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("day index %d out of range", idx)).
				WithDetails(map[string]any{"index": idx, "days": len(days)})
		}
	}
	out := make([]Day, len(days))
	copy(out, days)

	out[a].ProductID, out[b].ProductID = days[b].ProductID, days[a].ProductID
	out[a].IsFreeDay, out[b].IsFreeDay = days[b].IsFreeDay, days[a].IsFreeDay
	out[a].Locked = true
	out[b].Locked = true
	return out, nil
}

// Regenerate builds a fresh calendar and carries every locked day of previous
// onto the day with the same date. Stock accounting ignores the pinned days.
func (g *Generator) Regenerate(previous []Day, plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time) ([]Day, error) {
	fresh, err := g.Generate(plan, cat, profile, start)
	if err != nil {
		return nil, err
	}
	return OverlayLocked(previous, fresh), nil
}

// OverlayLocked copies the meal state of every locked day in previous onto the
// day of fresh with the same date. Locked days outside fresh are dropped.
// fresh is modified in place and returned.
func OverlayLocked(previous, fresh []Day) []Day {
	pinned := make(map[string]Day)
	for _, d := range previous {
		if d.Locked {
			pinned[d.DateKey()] = d
		}
	}
	if len(pinned) == 0 {
		return fresh
	}
	for i := range fresh {
		old, ok := pinned[fresh[i].DateKey()]
		if !ok {
			continue
		}
		fresh[i].ProductID = old.ProductID
		fresh[i].IsFreeDay = old.IsFreeDay
		fresh[i].Locked = true
	}
	return fresh
}

// ProfileDigest hashes the profile inputs the generator reads: portion size,
// protein days and the weekly meal cap.
func ProfileDigest(profile household.Profile) string {
	days := make([]byte, 0, len(profile.ProteinDays))
	for _, on := range profile.ProteinDays {
		if on {
			days = append(days, '1')
		} else {
			days = append(days, '0')
		}
	}
	raw := fmt.Sprintf("gpm=%.6f;days=%s;cap=%d", profile.GramsPerMeal(), days, profile.MealsCap())
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CacheDigest identifies a generation result by its inputs. It carries no
// household identity, so equal inputs share one entry.
func CacheDigest(planFingerprint, profileDigest string, start time.Time) string {
	raw := planFingerprint + "|" + profileDigest + "|" + utcDate(start).Format(dateLayout)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Regenerate uses the default generator.
func Regenerate(previous []Day, plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time) ([]Day, error) {
	return NewGenerator(nil).Regenerate(previous, plan, cat, profile, start)
}

// NextStartDate returns the first Monday at least seven days after now, at UTC midnight.
func NextStartDate(now time.Time) time.Time {
	return StartDateAfter(now, 7)
}

// StartDateAfter returns the first Monday at least leadDays after now, at UTC midnight.
func StartDateAfter(now time.Time, leadDays int) time.Time {
	if leadDays < 0 {
		leadDays = 0
	}
	d := utcDate(now.UTC()).AddDate(0, 0, leadDays)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
