package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeListingSpec(t *testing.T) {
	spec := NormalizeListingSpec(0, 0, "")
	assert.Equal(t, int64(0), spec.Offset)
	assert.Equal(t, 20, spec.Limit)
	assert.Equal(t, DefaultSorting, spec.Sort)

	spec = NormalizeListingSpec(-5, -1, "nonsense")
	assert.Equal(t, int64(0), spec.Offset)
	assert.Equal(t, 20, spec.Limit)
	assert.Equal(t, DefaultSorting, spec.Sort)

	spec = NormalizeListingSpec(40, 500, "name_desc")
	assert.Equal(t, int64(40), spec.Offset)
	assert.Equal(t, 100, spec.Limit)
	assert.Equal(t, SortNameDesc, spec.Sort)
}

func TestSortingPredicates(t *testing.T) {
	assert.True(t, SortNameAsc.ByName())
	assert.True(t, SortNameDesc.ByName())
	assert.False(t, SortIDAsc.ByName())

	assert.True(t, SortNameDesc.Descending())
	assert.True(t, SortIDDesc.Descending())
	assert.False(t, SortNameAsc.Descending())
}

func TestParseSorting(t *testing.T) {
	assert.Equal(t, SortNameAsc, ParseSorting("name_asc"))
	assert.Equal(t, DefaultSorting, ParseSorting(""))
	assert.Equal(t, DefaultSorting, ParseSorting("price_asc"))
}
