package cart

import (
	"context"
	"time"

	"github.com/angelmondragon/freezerplan-backend/pkg/db/models"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stored is a persisted plan with the pickup list produced alongside it.
type Stored struct {
	HouseholdID uuid.UUID
	Plan        Plan
	Pickup      PickupList
	Fingerprint string
	UpdatedAt   time.Time
}

// Repository persists household delivery plans.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Find loads the household's plan. Missing rows return gorm.ErrRecordNotFound.
func (r *Repository) Find(ctx context.Context, householdID uuid.UUID) (*Stored, error) {
	var row models.HouseholdPlan
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Pickups", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&row, "household_id = ?", householdID).Error
	if err != nil {
		return nil, err
	}

	stored := &Stored{
		HouseholdID: row.HouseholdID,
		Fingerprint: row.Fingerprint,
		UpdatedAt:   row.UpdatedAt,
		Pickup:      PickupList{},
	}
	for _, l := range row.Lines {
		stored.Plan.Lines = append(stored.Plan.Lines, Line{
			ProductID:  l.ProductID,
			Quantities: Quantities{l.Delivery1, l.Delivery2, l.Delivery3, l.Delivery4},
			Manual:     Quantities{l.Manual1, l.Manual2, l.Manual3, l.Manual4},
			Source:     l.Source,
		})
	}
	for _, p := range row.Pickups {
		stored.Pickup = append(stored.Pickup, PickupItem{ProductID: p.ProductID, DeliveryIndex: p.DeliveryIndex})
	}
	return stored, nil
}

// Save replaces the household's plan and pickup list.
func (r *Repository) Save(ctx context.Context, householdID uuid.UUID, plan Plan, pickup PickupList) (*Stored, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	row := models.HouseholdPlan{HouseholdID: householdID, Fingerprint: plan.Fingerprint()}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "household_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"fingerprint", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("household_id = ?", householdID).Delete(&models.PlanLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("household_id = ?", householdID).Delete(&models.PlanPickup{}).Error; err != nil {
			return err
		}

		lines := make([]models.PlanLine, 0, len(plan.Lines))
		for i, l := range plan.Lines {
			manual := l.ManualUnits()
			if l.Quantities.IsZero() && manual.IsZero() {
				continue
			}
			source := l.Source
			if source == "" {
				source = enums.LineSourceManual
			}
			lines = append(lines, models.PlanLine{
				HouseholdID: householdID,
				ProductID:   l.ProductID,
				Delivery1:   l.Quantities[0],
				Delivery2:   l.Quantities[1],
				Delivery3:   l.Quantities[2],
				Delivery4:   l.Quantities[3],
				Manual1:     manual[0],
				Manual2:     manual[1],
				Manual3:     manual[2],
				Manual4:     manual[3],
				Source:      source,
				Position:    i,
			})
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		pickups := make([]models.PlanPickup, 0, len(pickup))
		for i, p := range pickup {
			pickups = append(pickups, models.PlanPickup{
				HouseholdID:   householdID,
				ProductID:     p.ProductID,
				DeliveryIndex: p.DeliveryIndex,
				Position:      i,
			})
		}
		if len(pickups) > 0 {
			return tx.Create(&pickups).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, householdID)
}
