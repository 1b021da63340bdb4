package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/cetheme/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByModified SortField = "modified"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns default sort options (install order).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByID,
		Order: SortAsc,
	}
}

// Sort sorts themes in place based on the provided options.
func Sort(themes []model.Theme, opts SortOptions) {
	if len(themes) == 0 {
		return
	}

	less := func(a, b model.Theme) bool {
		switch opts.Field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByModified:
			ta, _ := a.ModifiedTime()
			tb, _ := b.ModifiedTime()
			return ta.Before(tb)
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(themes, func(i, j int) bool {
		if opts.Order == SortDesc {
			return less(themes[j], themes[i])
		}
		return less(themes[i], themes[j])
	})
}

// ParseSortField parses a sort field string. Unknown values fall back to id.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "n":
		return SortByName, nil
	case "modified", "time", "m":
		return SortByModified, nil
	default:
		return SortByID, nil
	}
}

// ParseSortOrder parses a sort order string. Unknown values fall back to asc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, nil
	}
}
