package model

// Sorting selects the order of a listing. The zero value is not valid; use
// DefaultSorting.
type Sorting string

const (
	SortNameAsc  Sorting = "name_asc"
	SortNameDesc Sorting = "name_desc"
	SortIDAsc    Sorting = "id_asc"
	SortIDDesc   Sorting = "id_desc"

	DefaultSorting = SortIDAsc
)

// ParseSorting maps a query-string value onto a Sorting, falling back to the
// default for anything unrecognized.
func ParseSorting(s string) Sorting {
	switch Sorting(s) {
	case SortNameAsc, SortNameDesc, SortIDAsc, SortIDDesc:
		return Sorting(s)
	default:
		return DefaultSorting
	}
}

// ByName reports whether the sort key is the name column; otherwise it is the
// id column.
func (s Sorting) ByName() bool {
	return s == SortNameAsc || s == SortNameDesc
}

func (s Sorting) Descending() bool {
	return s == SortNameDesc || s == SortIDDesc
}

const (
	defaultListingLimit = 20
	maxListingLimit     = 100
)

// ListingSpec is the normalized paging/sorting request applied to list queries.
type ListingSpec struct {
	Offset int64
	Limit  int
	Sort   Sorting
}

// NormalizeListingSpec clamps raw paging input into a usable spec.
func NormalizeListingSpec(offset int64, limit int, sort string) ListingSpec {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListingLimit
	}
	if limit > maxListingLimit {
		limit = maxListingLimit
	}
	return ListingSpec{
		Offset: offset,
		Limit:  limit,
		Sort:   ParseSorting(sort),
	}
}
