package household

import (
	"context"
	"testing"

	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/db/dbtest"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositorySaveAndFind(t *testing.T) {
	t.Parallel()

	repo := NewRepository(dbtest.Gorm(t))
	ctx := context.Background()

	rec := NewRecord(uuid.New())
	custody := 0.5
	rec.Profile.Teens = 1
	rec.Profile.CustodyFactor = &custody
	rec.Profile.ProteinDays[0] = false
	rec.Profile.WeeklyBudget = decimal.RequireFromString("135.50")
	beef1 := NewSlotKey(enums.SlotGroupBeef, 1)
	fish2 := NewSlotKey(enums.SlotGroupFish, 2)
	product := uuid.New()
	rec.Profile.Frequencies[beef1] = 1.25
	rec.Profile.Selections[beef1] = product
	rec.Profile.Frequencies[fish2] = 0.5
	persona := enums.PersonaFamilyBudget
	rec.PersonaID = &persona
	rec.Freezer.ChestCuFt = 7

	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Profile.Frequencies, got.Profile.Frequencies)
	assert.Equal(t, rec.Profile.Selections, got.Profile.Selections)
	assert.Equal(t, rec.Profile.ProteinDays, got.Profile.ProteinDays)
	assert.True(t, rec.Profile.WeeklyBudget.Equal(got.Profile.WeeklyBudget))
	require.NotNil(t, got.Profile.CustodyFactor)
	assert.InDelta(t, 0.5, *got.Profile.CustodyFactor, 1e-9)
	assert.Equal(t, rec.Freezer, got.Freezer)
	require.NotNil(t, got.PersonaID)
	assert.Equal(t, persona, *got.PersonaID)

	// Saving again replaces the slot set.
	rec.Profile.Frequencies = Frequencies{fish2: 2}
	rec.Profile.Selections = Selections{}
	require.NoError(t, repo.Save(ctx, rec))

	got, err = repo.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, Frequencies{fish2: 2}, got.Profile.Frequencies)
	assert.Empty(t, got.Profile.Selections)
}

func TestRepositoryFindMissing(t *testing.T) {
	t.Parallel()

	repo := NewRepository(dbtest.Gorm(t))
	_, err := repo.Find(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, db.IsNotFound(err))
}
