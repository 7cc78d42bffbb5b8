package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekMaskValueAndScan(t *testing.T) {
	t.Parallel()

	mask := WeekMask{false, true, true, true, true, true, false}
	v, err := mask.Value()
	require.NoError(t, err)
	assert.Equal(t, "0111110", v)

	var decoded WeekMask
	require.NoError(t, decoded.Scan([]byte("0111110")))
	assert.Equal(t, mask, decoded)

	require.NoError(t, decoded.Scan(nil))
	assert.Equal(t, WeekMask{}, decoded)
}

func TestWeekMaskScanRejectsMalformed(t *testing.T) {
	t.Parallel()

	var m WeekMask
	assert.Error(t, m.Scan("101"))
	assert.Error(t, m.Scan("10x1111"))
	assert.Error(t, m.Scan(42))
}
