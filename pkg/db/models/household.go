package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/freezerplan-backend/pkg/db/types"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
)

// Household holds the editable profile and freezer of one planning session.
type Household struct {
	ID                    uuid.UUID        `gorm:"column:id;type:text;primaryKey"`
	Adults                int              `gorm:"column:adults;not null;default:0"`
	Teens                 int              `gorm:"column:teens;not null;default:0"`
	Children              int              `gorm:"column:children;not null;default:0"`
	GramsPerPerson        float64          `gorm:"column:grams_per_person;not null"`
	RestaurantDaysPerYear int              `gorm:"column:restaurant_days_per_year;not null;default:0"`
	CustodyFactor         *float64         `gorm:"column:custody_factor"`
	ProteinDays           dbtypes.WeekMask `gorm:"column:protein_days;type:text;not null"`
	MealsPerWeek          int              `gorm:"column:meals_per_week;not null"`
	WeeklyBudget          decimal.Decimal  `gorm:"column:weekly_budget;type:text;not null"`
	FridgeCuFt            float64          `gorm:"column:fridge_cu_ft;not null"`
	FridgeEfficiency      float64          `gorm:"column:fridge_efficiency;not null"`
	ChestCuFt             float64          `gorm:"column:chest_cu_ft;not null"`
	ChestEfficiency       float64          `gorm:"column:chest_efficiency;not null"`
	PersonaID             *enums.PersonaID `gorm:"column:persona_id"`
	Slots                 []HouseholdSlot  `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// HouseholdSlot is one protein slot: its weekly frequency and selected product.
type HouseholdSlot struct {
	HouseholdID uuid.UUID  `gorm:"column:household_id;type:text;primaryKey"`
	Slot        string     `gorm:"column:slot;primaryKey"`
	Frequency   float64    `gorm:"column:frequency;not null;default:0"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:text"`
}
