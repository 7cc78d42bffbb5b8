package models

import (
	"time"

	"github.com/google/uuid"
)

// HouseholdCalendar records which plan and profile produced the stored days.
type HouseholdCalendar struct {
	HouseholdID     uuid.UUID     `gorm:"column:household_id;type:text;primaryKey"`
	PlanFingerprint string        `gorm:"column:plan_fingerprint;not null"`
	ProfileHash     string        `gorm:"column:profile_hash;not null"`
	StartDate       string        `gorm:"column:start_date;not null"`
	Days            []CalendarDay `gorm:"foreignKey:HouseholdID;references:HouseholdID;constraint:OnDelete:CASCADE"`
	GeneratedAt     time.Time     `gorm:"column:generated_at;not null"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// CalendarDay is one stored calendar entry.
type CalendarDay struct {
	HouseholdID   uuid.UUID  `gorm:"column:household_id;type:text;primaryKey"`
	DayIndex      int        `gorm:"column:day_index;primaryKey"`
	Date          string     `gorm:"column:date;not null"`
	ProductID     *uuid.UUID `gorm:"column:product_id;type:text"`
	IsDeliveryDay bool       `gorm:"column:is_delivery_day;not null;default:false"`
	DeliveryIndex int        `gorm:"column:delivery_index;not null;default:0"`
	IsFreeDay     bool       `gorm:"column:is_free_day;not null;default:false"`
	Locked        bool       `gorm:"column:locked;not null;default:false"`
}
