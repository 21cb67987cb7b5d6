package model

import "slices"

// SetAutoLoad enables or disables reopening folders after a restart.
func (s *Store) SetAutoLoad(on bool) {
	s.AutoLoadLastFolder = on
}

// RememberFolder appends path to the auto-open list when auto-load is on
// and the path is not listed yet. It reports whether the list changed.
func (s *Store) RememberFolder(path string) bool {
	if s.Kind != KindFolder || !s.AutoLoadLastFolder || path == "" {
		return false
	}
	if slices.Contains(s.LastOpenedFolders, path) {
		return false
	}
	s.LastOpenedFolders = append(s.LastOpenedFolders, path)
	return true
}

// ForgetFolder removes the auto-open entry at index.
func (s *Store) ForgetFolder(index int) error {
	if index < 0 || index >= len(s.LastOpenedFolders) {
		return ErrNotFound
	}
	s.LastOpenedFolders = slices.Delete(s.LastOpenedFolders, index, index+1)
	return nil
}

// AutoOpenFolders returns the auto-open paths that still exist as
// directories, paired with their index in LastOpenedFolders.
func (s *Store) AutoOpenFolders() []AutoOpenEntry {
	var out []AutoOpenEntry
	for i, p := range s.LastOpenedFolders {
		if KindFolder.Exists(p) {
			out = append(out, AutoOpenEntry{Index: i, Path: p})
		}
	}
	return out
}

// AutoOpenEntry is a rendered row of the auto-open list.
type AutoOpenEntry struct {
	Index int
	Path  string
}
