package tui

import "path/filepath"

// RowKind tells which list a row belongs to.
type RowKind int

const (
	RowBookmark RowKind = iota
	RowRecent
	RowAutoOpen
)

// Row is one line of the dialog list.
type Row struct {
	Kind    RowKind
	Name    string // bookmark name, or base name of the path
	Path    string
	Pinned  bool
	Index   int   // position in the recent or auto-open list
	Matched []int // byte offsets in Name hit by the filter
}

// Title returns a display title for the row.
func (r Row) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return filepath.Base(r.Path)
}

// IsBookmark returns true for rows of the saved list.
func (r Row) IsBookmark() bool {
	return r.Kind == RowBookmark
}
