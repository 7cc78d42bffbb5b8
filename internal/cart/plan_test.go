package cart

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAddMergesIntoExistingLine(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var p Plan
	p.Add(id, Quantities{1, 1, 0, 0}, enums.LineSourceManual)
	p.Add(id, Quantities{2, 1, 1, 1}, enums.LineSourceSystemOptimized)

	require.Len(t, p.Lines, 1)
	assert.Equal(t, Quantities{3, 2, 1, 1}, p.Lines[0].Quantities)
	assert.Equal(t, enums.LineSourceManual, p.Lines[0].Source, "existing provenance is preserved")
	assert.Equal(t, 7, p.TotalUnits())
	assert.Equal(t, 2, p.DeliveryUnits(2))
	assert.Equal(t, 0, p.DeliveryUnits(5))
}

func TestPlanSetManualTracksHandSetUnits(t *testing.T) {
	t.Parallel()

	sys, hand := uuid.New(), uuid.New()
	p := Plan{Lines: []Line{{ProductID: sys, Quantities: Quantities{4, 4, 4, 3}, Source: enums.LineSourceSystemOptimized}}}

	p.SetManual(sys, Quantities{5, 0, 0, 0})
	p.SetManual(hand, Quantities{0, 1, 0, 0})
	require.Len(t, p.Lines, 2)
	assert.Equal(t, Quantities{9, 4, 4, 3}, p.Lines[0].Quantities)
	assert.Equal(t, Quantities{5, 0, 0, 0}, p.Lines[0].ManualUnits())
	assert.Equal(t, Quantities{4, 4, 4, 3}, p.Lines[0].SystemUnits())
	assert.Equal(t, enums.LineSourceSystemOptimized, p.Lines[0].Source)
	assert.Equal(t, enums.LineSourceManual, p.Lines[1].Source)

	p.SetManual(sys, Quantities{2, 0, 0, 0})
	assert.Equal(t, Quantities{6, 4, 4, 3}, p.Lines[0].Quantities, "replaces rather than adds")

	p.SetManual(sys, Quantities{})
	p.SetManual(hand, Quantities{})
	p.SetManual(uuid.New(), Quantities{})
	p.Cleanup()
	require.Len(t, p.Lines, 1)
	assert.Equal(t, Quantities{4, 4, 4, 3}, p.Lines[0].Quantities)
	assert.True(t, p.Lines[0].ManualUnits().IsZero())
}

func TestPlanManualPartDropsSystemUnits(t *testing.T) {
	t.Parallel()

	mixed, manual, system := uuid.New(), uuid.New(), uuid.New()
	p := Plan{Lines: []Line{
		{ProductID: mixed, Quantities: Quantities{9, 4, 4, 3}, Manual: Quantities{5, 0, 0, 0}, Source: enums.LineSourceSystemOptimized},
		{ProductID: manual, Quantities: Quantities{0, 0, 1, 0}, Source: enums.LineSourceManual},
		{ProductID: system, Quantities: Quantities{1, 1, 1, 1}, Source: enums.LineSourceSystemOptimized},
	}}

	part := p.ManualPart()
	require.Len(t, part.Lines, 2)
	assert.Equal(t, Line{ProductID: mixed, Quantities: Quantities{5, 0, 0, 0}, Manual: Quantities{5, 0, 0, 0}, Source: enums.LineSourceManual}, part.Lines[0])
	assert.Equal(t, Quantities{0, 0, 1, 0}, part.Lines[1].Manual)
}

func TestPlanCleanupDropsEmptyLines(t *testing.T) {
	t.Parallel()

	keep, drop := uuid.New(), uuid.New()
	p := Plan{Lines: []Line{
		{ProductID: drop},
		{ProductID: keep, Quantities: Quantities{0, 0, 0, 1}},
	}}
	original := p.Clone()
	p.Cleanup()

	require.Len(t, p.Lines, 1)
	assert.Equal(t, keep, p.Lines[0].ProductID)
	assert.Len(t, original.Lines, 2, "clone is unaffected by cleanup")
}

func TestPlanValidateAggregatesErrors(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	p := Plan{Lines: []Line{
		{ProductID: id, Quantities: Quantities{1, -1, 0, 0}},
		{ProductID: id, Quantities: Quantities{1, 0, 0, 0}},
		{ProductID: uuid.Nil, Quantities: Quantities{1, 0, 0, 0}, Source: "robot"},
	}}
	err := p.Validate()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]any)
	assert.Len(t, details["errors"], 4)

	assert.NoError(t, Plan{}.Validate())
}

func TestPlanFingerprintIgnoresOrderAndEmptyLines(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	p1 := Plan{Lines: []Line{
		{ProductID: a, Quantities: Quantities{1, 0, 0, 0}},
		{ProductID: b, Quantities: Quantities{0, 2, 0, 0}},
	}}
	p2 := Plan{Lines: []Line{
		{ProductID: b, Quantities: Quantities{0, 2, 0, 0}},
		{ProductID: uuid.New()},
		{ProductID: a, Quantities: Quantities{1, 0, 0, 0}},
	}}
	assert.Equal(t, p1.Fingerprint(), p2.Fingerprint())

	p2.Lines[0].Quantities[1] = 3
	assert.NotEqual(t, p1.Fingerprint(), p2.Fingerprint())
}

func TestQuantitiesJSONUsesDeliveryIndexes(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Quantities{2, 2, 1, 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":2,"2":2,"3":1,"4":0}`, string(raw))

	var q Quantities
	require.NoError(t, json.Unmarshal([]byte(`{"4":3,"1":1}`), &q))
	assert.Equal(t, Quantities{1, 0, 0, 3}, q)

	assert.Error(t, json.Unmarshal([]byte(`{"5":1}`), &q))
	assert.Error(t, json.Unmarshal([]byte(`{"0":1}`), &q))
}

func TestApplyOffloadReturnsNewPlan(t *testing.T) {
	t.Parallel()

	heavy, light := uuid.New(), uuid.New()
	p := Plan{Lines: []Line{
		{ProductID: heavy, Quantities: Quantities{2, 1, 0, 0}, Source: enums.LineSourceSystemOptimized},
		{ProductID: light, Quantities: Quantities{1, 0, 0, 0}, Source: enums.LineSourceSystemOptimized},
	}}
	pickup := PickupList{
		{ProductID: heavy, DeliveryIndex: 1},
		{ProductID: heavy, DeliveryIndex: 1},
		{ProductID: light, DeliveryIndex: 1},
	}
	offload := pickup.Offload()
	require.Len(t, offload.Removals, 2)
	assert.Equal(t, 3, offload.TotalUnits())

	next, err := p.ApplyOffload(offload)
	require.NoError(t, err)

	require.Len(t, next.Lines, 1, "fully offloaded line is cleaned up")
	assert.Equal(t, Quantities{0, 1, 0, 0}, next.Lines[0].Quantities)
	assert.Equal(t, Quantities{2, 1, 0, 0}, p.Lines[0].Quantities, "input plan is not mutated")
	assert.Equal(t, p.TotalUnits(), next.TotalUnits()+len(pickup))
}

func TestApplyOffloadRejectsInvalidRemovals(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	p := Plan{Lines: []Line{{ProductID: id, Quantities: Quantities{1, 0, 0, 0}}}}

	cases := map[string]Offload{
		"index zero":      {Removals: []Removal{{ProductID: id, DeliveryIndex: 0, Units: 1}}},
		"index five":      {Removals: []Removal{{ProductID: id, DeliveryIndex: 5, Units: 1}}},
		"negative units":  {Removals: []Removal{{ProductID: id, DeliveryIndex: 1, Units: -1}}},
		"too many units":  {Removals: []Removal{{ProductID: id, DeliveryIndex: 1, Units: 2}}},
		"unknown product": {Removals: []Removal{{ProductID: uuid.New(), DeliveryIndex: 1, Units: 1}}},
	}
	for name, o := range cases {
		_, err := p.ApplyOffload(o)
		require.Errorf(t, err, name)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), name)
	}
}
