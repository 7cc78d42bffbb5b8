package pagination

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	pos int
	id  uuid.UUID
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{pos: i * 2, id: uuid.New()}
	}
	return out
}

func pageOf(t *testing.T, items []row, params Params) Page[row] {
	t.Helper()
	page, err := Paginate(items, params, func(r row) int { return r.pos }, func(r row) uuid.UUID { return r.id })
	require.NoError(t, err)
	return page
}

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	assert.Equal(t, 7, NormalizeLimit(7))
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	in := Cursor{Position: 42, ID: uuid.New()}
	out, err := ParseCursor(EncodeCursor(in))
	require.NoError(t, err)
	assert.Equal(t, in, *out)

	none, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = ParseCursor("not base64!")
	assert.Error(t, err)
}

func TestPaginateWalksAllItems(t *testing.T) {
	t.Parallel()

	items := rows(5)
	var seen []row
	params := Params{Limit: 2}
	for i := 0; i < 5; i++ {
		page := pageOf(t, items, params)
		seen = append(seen, page.Items...)
		if page.NextCursor == "" {
			break
		}
		params.Cursor = page.NextCursor
	}
	assert.Equal(t, items, seen)
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	t.Parallel()

	items := rows(3)
	cursor := EncodeCursor(Cursor{Position: 100, ID: uuid.New()})
	page := pageOf(t, items, Params{Cursor: cursor})
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
}
