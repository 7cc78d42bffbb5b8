package calendar

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Day is one calendar entry. A free day has no product.
type Day struct {
	Date          time.Time
	ProductID     *uuid.UUID
	IsDeliveryDay bool
	DeliveryIndex int
	IsFreeDay     bool
	Locked        bool
}

type dayJSON struct {
	Date          string     `json:"date"`
	ProductID     *uuid.UUID `json:"productId"`
	IsDeliveryDay bool       `json:"isDeliveryDay"`
	DeliveryIndex int        `json:"deliveryIndex,omitempty"`
	IsFreeDay     bool       `json:"isFreeDay"`
	Locked        bool       `json:"locked"`
}

// DateKey returns the ISO date of the day.
func (d Day) DateKey() string {
	return d.Date.UTC().Format(dateLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayJSON{
		Date:          d.DateKey(),
		ProductID:     d.ProductID,
		IsDeliveryDay: d.IsDeliveryDay,
		DeliveryIndex: d.DeliveryIndex,
		IsFreeDay:     d.IsFreeDay,
		Locked:        d.Locked,
	})
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var raw dayJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse(dateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("calendar day date %q: %w", raw.Date, err)
	}
	*d = Day{
		Date:          date,
		ProductID:     raw.ProductID,
		IsDeliveryDay: raw.IsDeliveryDay,
		DeliveryIndex: raw.DeliveryIndex,
		IsFreeDay:     raw.IsFreeDay,
		Locked:        raw.Locked,
	}
	return nil
}

func (d *Day) assign(productID uuid.UUID) {
	id := productID
	d.ProductID = &id
	d.IsFreeDay = false
}

func (d *Day) free() {
	d.ProductID = nil
	d.IsFreeDay = true
}

// Summary counts day kinds in a calendar.
type Summary struct {
	MealDays     int `json:"mealDays"`
	FreeDays     int `json:"freeDays"`
	DeliveryDays int `json:"deliveryDays"`
	LockedDays   int `json:"lockedDays"`
}

// Summarize tallies the calendar.
func Summarize(days []Day) Summary {
	var s Summary
	for _, d := range days {
		if d.IsFreeDay || d.ProductID == nil {
			s.FreeDays++
		} else {
			s.MealDays++
		}
		if d.IsDeliveryDay {
			s.DeliveryDays++
		}
		if d.Locked {
			s.LockedDays++
		}
	}
	return s
}
