package household

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/freezerplan-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/freezerplan-backend/pkg/db/types"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a stored household session.
type Record struct {
	ID        uuid.UUID
	Profile   Profile
	Freezer   Freezer
	PersonaID *enums.PersonaID
	UpdatedAt time.Time
}

// NewRecord returns a record with default profile and freezer.
func NewRecord(id uuid.UUID) Record {
	return Record{ID: id, Profile: NewProfile(), Freezer: DefaultFreezer()}
}

// Repository persists households and their slots.
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

// Find loads a household with its slots. Missing rows return gorm.ErrRecordNotFound.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	var row models.Household
	if err := r.db.WithContext(ctx).Preload("Slots").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	rec, err := fromModel(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save upserts the household row and replaces its slots.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	row := toModel(rec)
	slots := row.Slots
	row.Slots = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"adults", "teens", "children", "grams_per_person", "restaurant_days_per_year", "custody_factor", "protein_days", "meals_per_week", "weekly_budget", "fridge_cu_ft", "fridge_efficiency", "chest_cu_ft", "chest_efficiency", "persona_id", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("household_id = ?", rec.ID).Delete(&models.HouseholdSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func toModel(rec Record) models.Household {
	p := rec.Profile
	row := models.Household{
		ID:                    rec.ID,
		Adults:                p.Adults,
		Teens:                 p.Teens,
		Children:              p.Children,
		GramsPerPerson:        p.GramsPerPerson,
		RestaurantDaysPerYear: p.RestaurantDaysPerYear,
		CustodyFactor:         p.CustodyFactor,
		ProteinDays:           dbtypes.WeekMask(p.ProteinDays),
		MealsPerWeek:          p.MealsPerWeek,
		WeeklyBudget:          p.WeeklyBudget,
		FridgeCuFt:            rec.Freezer.FridgeCuFt,
		FridgeEfficiency:      rec.Freezer.FridgeEfficiency,
		ChestCuFt:             rec.Freezer.ChestCuFt,
		ChestEfficiency:       rec.Freezer.ChestEfficiency,
		PersonaID:             rec.PersonaID,
	}

	keys := map[SlotKey]struct{}{}
	for k := range p.Frequencies {
		keys[k] = struct{}{}
	}
	for k := range p.Selections {
		keys[k] = struct{}{}
	}
	ordered := make([]SlotKey, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	SortSlotKeys(ordered)

	for _, k := range ordered {
		slot := models.HouseholdSlot{HouseholdID: rec.ID, Slot: k.Name(), Frequency: p.Frequencies[k]}
		if id, ok := p.Selection(k); ok {
			slot.ProductID = &id
		}
		row.Slots = append(row.Slots, slot)
	}
	return row
}

func fromModel(row models.Household) (Record, error) {
	p := Profile{
		Adults:                row.Adults,
		Teens:                 row.Teens,
		Children:              row.Children,
		GramsPerPerson:        row.GramsPerPerson,
		RestaurantDaysPerYear: row.RestaurantDaysPerYear,
		CustodyFactor:         row.CustodyFactor,
		Frequencies:           Frequencies{},
		Selections:            Selections{},
		ProteinDays:           ProteinDays(row.ProteinDays),
		MealsPerWeek:          row.MealsPerWeek,
		WeeklyBudget:          row.WeeklyBudget,
	}
	for _, s := range row.Slots {
		key, err := ParseSlotKey(s.Slot)
		if err != nil {
			return Record{}, fmt.Errorf("household %s: %w", row.ID, err)
		}
		if s.Frequency != 0 {
			p.Frequencies[key] = s.Frequency
		}
		if s.ProductID != nil {
			p.Selections[key] = *s.ProductID
		}
	}
	return Record{
		ID:      row.ID,
		Profile: p,
		Freezer: Freezer{
			FridgeCuFt:       row.FridgeCuFt,
			FridgeEfficiency: row.FridgeEfficiency,
			ChestCuFt:        row.ChestCuFt,
			ChestEfficiency:  row.ChestEfficiency,
		},
		PersonaID: row.PersonaID,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
