package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParamsClamps(t *testing.T) {
	p := NewParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = NewParams(3, 500)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Slice(items, NewParams(2, 2))
	assert.Equal(t, []int{3, 4}, page.Data)
	assert.Equal(t, int64(5), page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)
	assert.True(t, page.Meta.HasPrev)

	last := Slice(items, NewParams(3, 2))
	assert.Equal(t, []int{5}, last.Data)
	assert.False(t, last.Meta.HasNext)

	beyond := Slice(items, NewParams(9, 2))
	assert.Empty(t, beyond.Data)
}
