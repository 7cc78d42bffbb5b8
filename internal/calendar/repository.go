package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/freezerplan-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stored is a persisted calendar and the inputs it was generated from.
type Stored struct {
	HouseholdID     uuid.UUID
	PlanFingerprint string
	ProfileHash     string
	StartDate       time.Time
	GeneratedAt     time.Time
	Days            []Day
}

// Repository persists generated calendars.
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

// Find loads a calendar. Missing rows return gorm.ErrRecordNotFound.
func (r *Repository) Find(ctx context.Context, householdID uuid.UUID) (*Stored, error) {
	var row models.HouseholdCalendar
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_index ASC") }).
		First(&row, "household_id = ?", householdID).Error
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, row.StartDate)
	if err != nil {
		return nil, fmt.Errorf("calendar %s start date %q: %w", householdID, row.StartDate, err)
	}
	stored := &Stored{
		HouseholdID:     row.HouseholdID,
		PlanFingerprint: row.PlanFingerprint,
		ProfileHash:     row.ProfileHash,
		StartDate:       start,
		GeneratedAt:     row.GeneratedAt,
		Days:            make([]Day, 0, len(row.Days)),
	}
	for _, d := range row.Days {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("calendar %s day %d date %q: %w", householdID, d.DayIndex, d.Date, err)
		}
		stored.Days = append(stored.Days, Day{
			Date:          date,
			ProductID:     d.ProductID,
			IsDeliveryDay: d.IsDeliveryDay,
			DeliveryIndex: d.DeliveryIndex,
			IsFreeDay:     d.IsFreeDay,
			Locked:        d.Locked,
		})
	}
	return stored, nil
}

// Save replaces the household's calendar.
func (r *Repository) Save(ctx context.Context, s Stored) error {
	generated := s.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	row := models.HouseholdCalendar{
		HouseholdID:     s.HouseholdID,
		PlanFingerprint: s.PlanFingerprint,
		ProfileHash:     s.ProfileHash,
		StartDate:       s.StartDate.UTC().Format(dateLayout),
		GeneratedAt:     generated,
	}
	days := make([]models.CalendarDay, 0, len(s.Days))
	for i, d := range s.Days {
		days = append(days, models.CalendarDay{
			HouseholdID:   s.HouseholdID,
			DayIndex:      i,
			Date:          d.DateKey(),
			ProductID:     d.ProductID,
			IsDeliveryDay: d.IsDeliveryDay,
			DeliveryIndex: d.DeliveryIndex,
			IsFreeDay:     d.IsFreeDay,
			Locked:        d.Locked,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "household_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan_fingerprint", "profile_hash", "start_date", "generated_at", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("household_id = ?", s.HouseholdID).Delete(&models.CalendarDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.CreateInBatches(&days, 100).Error
	})
}

// Delete removes a stored calendar and its days. Deleting a missing calendar is not an error.
func (r *Repository) Delete(ctx context.Context, householdID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("household_id = ?", householdID).Delete(&models.CalendarDay{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&models.HouseholdCalendar{}).Error
	})
}
