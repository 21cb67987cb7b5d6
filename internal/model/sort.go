package model

// SortMode controls the order of unpinned bookmarks.
type SortMode string

const (
	SortCustom    SortMode = "CUSTOM"    // stored order, reorderable
	SortUppercase SortMode = "UPPERCASE" // ascending, case-insensitive
	SortLowercase SortMode = "LOWERCASE" // descending by lowercase key
)

// ParseSortMode returns the mode for s, falling back to SortUppercase.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortCustom, SortUppercase, SortLowercase:
		return SortMode(s)
	}
	return SortUppercase
}

// Next cycles CUSTOM -> UPPERCASE -> LOWERCASE -> CUSTOM.
func (m SortMode) Next() SortMode {
	switch m {
	case SortCustom:
		return SortUppercase
	case SortUppercase:
		return SortLowercase
	default:
		return SortCustom
	}
}

// Label returns the human readable name of the mode.
func (m SortMode) Label() string {
	switch m {
	case SortCustom:
		return "Custom order"
	case SortLowercase:
		return "Descending z-a"
	default:
		return "Ascending, a-z"
	}
}

// Short returns an abbreviated label for status lines.
func (m SortMode) Short() string {
	switch m {
	case SortCustom:
		return "man"
	case SortLowercase:
		return "z-a"
	default:
		return "a-z"
	}
}
