package model

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

// MaxRecent bounds the recent list.
const MaxRecent = 20

var (
	ErrEmptyName      = errors.New("name is empty")
	ErrNameExists     = errors.New("this name already exists")
	ErrNotFound       = errors.New("bookmark not found")
	ErrNotReorderable = errors.New("bookmark cannot be moved in the current sort mode")
	ErrNotExist       = errors.New("path does not exist")
)

// Store holds the bookmarks of a single kind together with their display
// state. Folder stores additionally carry the auto-open state.
type Store struct {
	Kind     Kind
	Entries  map[string]string // name -> absolute path
	Order    []string          // custom display order of names
	Pinned   map[string]bool   // pinned names
	SortMode SortMode
	ShowPath bool
	Recent   []string // most recently used first

	// Folder stores only.
	AutoLoadLastFolder bool
	LastOpenedFolders  []string
	LastSystemUptime   int64 // milliseconds since boot at last check
}

// NewStore creates an empty Store of the given kind with initialized collections.
func NewStore(kind Kind) *Store {
	return &Store{
		Kind:              kind,
		Entries:           map[string]string{},
		Order:             []string{},
		Pinned:            map[string]bool{},
		SortMode:          SortUppercase,
		Recent:            []string{},
		LastOpenedFolders: []string{},
	}
}

// Path returns the path saved under name.
func (s *Store) Path(name string) (string, bool) {
	p, ok := s.Entries[name]
	return p, ok
}

// IsPinned reports whether name is pinned.
func (s *Store) IsPinned(name string) bool {
	return s.Pinned[name]
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.Entries)
}

// Add saves path under name and appends name to the custom order.
func (s *Store) Add(name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := s.Entries[name]; exists {
		return ErrNameExists
	}
	s.Entries[name] = path
	if !slices.Contains(s.Order, name) {
		s.Order = append(s.Order, name)
	}
	return nil
}

// Rename moves the bookmark oldName to newName, keeping its position in the
// custom order and its pin.
func (s *Store) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	path, ok := s.Entries[oldName]
	if !ok {
		return ErrNotFound
	}
	if newName == oldName {
		return nil
	}
	if _, exists := s.Entries[newName]; exists {
		return ErrNameExists
	}

	delete(s.Entries, oldName)
	s.Entries[newName] = path
	for i, n := range s.Order {
		if n == oldName {
			s.Order[i] = newName
		}
	}
	if s.Pinned[oldName] {
		delete(s.Pinned, oldName)
		s.Pinned[newName] = true
	}
	return nil
}

// Remove deletes the bookmark and every reference to its name. For folder
// stores the path is also dropped from the auto-open list.
func (s *Store) Remove(name string) error {
	path, ok := s.Entries[name]
	if !ok {
		return ErrNotFound
	}
	delete(s.Entries, name)
	s.Order = slices.DeleteFunc(s.Order, func(n string) bool { return n == name })
	delete(s.Pinned, name)
	if s.Kind == KindFolder {
		s.LastOpenedFolders = slices.DeleteFunc(s.LastOpenedFolders, func(p string) bool { return p == path })
	}
	return nil
}

// TogglePin flips the pin on name and returns the new state.
func (s *Store) TogglePin(name string) (bool, error) {
	if _, ok := s.Entries[name]; !ok {
		return false, ErrNotFound
	}
	if s.Pinned[name] {
		delete(s.Pinned, name)
		return false, nil
	}
	s.Pinned[name] = true
	return true, nil
}

// Reorder swaps an unpinned bookmark with its unpinned neighbour in the
// custom order. direction is -1 (earlier) or +1 (later). It reports whether
// anything moved; moving past either end is a no-op.
func (s *Store) Reorder(name string, direction int) (bool, error) {
	if _, ok := s.Entries[name]; !ok {
		return false, ErrNotFound
	}
	if s.SortMode != SortCustom || s.Pinned[name] {
		return false, ErrNotReorderable
	}

	var pinned, unpinned []string
	for _, n := range s.Order {
		if s.Pinned[n] {
			pinned = append(pinned, n)
		} else {
			unpinned = append(unpinned, n)
		}
	}

	cur := slices.Index(unpinned, name)
	next := cur + direction
	if cur < 0 || next < 0 || next >= len(unpinned) {
		return false, nil
	}
	unpinned[cur], unpinned[next] = unpinned[next], unpinned[cur]

	slices.Sort(pinned)
	s.Order = append(pinned, unpinned...)
	return true, nil
}

// AddRecent moves path to the front of the recent list. The path must
// currently exist as the store's kind.
func (s *Store) AddRecent(path string) error {
	if !s.Kind.Exists(path) {
		return ErrNotExist
	}
	s.Recent = slices.DeleteFunc(s.Recent, func(p string) bool { return p == path })
	s.Recent = slices.Insert(s.Recent, 0, path)
	if len(s.Recent) > MaxRecent {
		s.Recent = s.Recent[:MaxRecent]
	}
	return nil
}

// RemoveRecent drops the recent entry at index.
func (s *Store) RemoveRecent(index int) error {
	if index < 0 || index >= len(s.Recent) {
		return ErrNotFound
	}
	s.Recent = slices.Delete(s.Recent, index, index+1)
	return nil
}

// ClearRecent empties the recent list.
func (s *Store) ClearRecent() {
	s.Recent = []string{}
}

// VisibleOrder yields bookmark names in display order: pinned names first
// (case-insensitive ascending), then unpinned names per SortMode. Names whose
// path does not match filter are skipped.
func (s *Store) VisibleOrder(filter TypeFilter) iter.Seq[string] {
	return func(yield func(string) bool) {
		var pinned, unpinned []string
		for _, n := range s.Order {
			if _, ok := s.Entries[n]; !ok {
				continue
			}
			if s.Pinned[n] {
				pinned = append(pinned, n)
			} else {
				unpinned = append(unpinned, n)
			}
		}

		slices.SortStableFunc(pinned, func(a, b string) int {
			return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
		})
		switch s.SortMode {
		case SortUppercase:
			slices.SortStableFunc(unpinned, func(a, b string) int {
				return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
			})
		case SortLowercase:
			// Descending on the lowercase key; ties keep stored order.
			slices.SortStableFunc(unpinned, func(a, b string) int {
				return strings.Compare(strings.ToLower(b), strings.ToLower(a))
			})
		}

		for _, n := range slices.Concat(pinned, unpinned) {
			if !filter.Match(s.Entries[n]) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Visible collects VisibleOrder into a slice.
func (s *Store) Visible(filter TypeFilter) []string {
	return slices.Collect(s.VisibleOrder(filter))
}

// Normalize repairs a store read from disk: nil collections are initialized,
// order and pins referring to unknown names are pruned, duplicate order
// entries are dropped, and bookmarks missing from the order are appended in
// sorted order.
func (s *Store) Normalize() {
	if s.Entries == nil {
		s.Entries = map[string]string{}
	}
	if s.Pinned == nil {
		s.Pinned = map[string]bool{}
	}
	if s.Recent == nil {
		s.Recent = []string{}
	}
	if s.LastOpenedFolders == nil {
		s.LastOpenedFolders = []string{}
	}
	s.SortMode = ParseSortMode(string(s.SortMode))

	seen := make(map[string]bool, len(s.Order))
	order := make([]string, 0, len(s.Entries))
	for _, n := range s.Order {
		if _, ok := s.Entries[n]; !ok || seen[n] {
			continue
		}
		seen[n] = true
		order = append(order, n)
	}
	var missing []string
	for n := range s.Entries {
		if !seen[n] {
			missing = append(missing, n)
		}
	}
	slices.Sort(missing)
	s.Order = append(order, missing...)

	for n := range s.Pinned {
		if _, ok := s.Entries[n]; !ok {
			delete(s.Pinned, n)
		}
	}

	if len(s.Recent) > MaxRecent {
		s.Recent = s.Recent[:MaxRecent]
	}
}

// PinnedNames returns the pinned names sorted case-sensitively.
func (s *Store) PinnedNames() []string {
	names := make([]string, 0, len(s.Pinned))
	for n := range s.Pinned {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
