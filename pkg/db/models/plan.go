package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
)

// HouseholdPlan is the stored delivery plan of a household and its pickup list.
type HouseholdPlan struct {
	HouseholdID uuid.UUID    `gorm:"column:household_id;type:text;primaryKey"`
	Fingerprint string       `gorm:"column:fingerprint;not null"`
	Lines       []PlanLine   `gorm:"foreignKey:HouseholdID;references:HouseholdID;constraint:OnDelete:CASCADE"`
	Pickups     []PlanPickup `gorm:"foreignKey:HouseholdID;references:HouseholdID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// PlanLine stores per-delivery unit counts for one product. The manual
// columns hold the hand-set share.
type PlanLine struct {
	HouseholdID uuid.UUID        `gorm:"column:household_id;type:text;primaryKey"`
	ProductID   uuid.UUID        `gorm:"column:product_id;type:text;primaryKey"`
	Delivery1   int              `gorm:"column:delivery_1;not null;default:0"`
	Delivery2   int              `gorm:"column:delivery_2;not null;default:0"`
	Delivery3   int              `gorm:"column:delivery_3;not null;default:0"`
	Delivery4   int              `gorm:"column:delivery_4;not null;default:0"`
	Manual1     int              `gorm:"column:manual_1;not null;default:0"`
	Manual2     int              `gorm:"column:manual_2;not null;default:0"`
	Manual3     int              `gorm:"column:manual_3;not null;default:0"`
	Manual4     int              `gorm:"column:manual_4;not null;default:0"`
	Source      enums.LineSource `gorm:"column:source;not null"`
	Position    int              `gorm:"column:position;not null;default:0"`
}

// PlanPickup is one unit moved from a delivery to in-store pickup.
type PlanPickup struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	HouseholdID   uuid.UUID `gorm:"column:household_id;type:text;not null;index"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:text;not null"`
	DeliveryIndex int       `gorm:"column:delivery_index;not null"`
	Position      int       `gorm:"column:position;not null;default:0"`
}
