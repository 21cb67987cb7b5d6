package search

import (
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/af/internal/model"
)

// Entry is a searchable row: a bookmark or a recent path.
type Entry struct {
	Name string
	Path string
}

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Entry          Entry
	MatchedIndexes []int
	Score          int
}

// entryNames implements fuzzy.Source over entry names.
type entryNames []Entry

func (en entryNames) String(i int) string {
	return en[i].Name
}

func (en entryNames) Len() int {
	return len(en)
}

// Bookmarks returns the store's bookmarks in display order.
func Bookmarks(store *model.Store, filter model.TypeFilter) []Entry {
	var entries []Entry
	for name := range store.VisibleOrder(filter) {
		entries = append(entries, Entry{Name: name, Path: store.Entries[name]})
	}
	return entries
}

// Recent returns the recent paths named by their base name.
func Recent(store *model.Store) []Entry {
	entries := make([]Entry, len(store.Recent))
	for i, p := range store.Recent {
		entries[i] = Entry{Name: filepath.Base(p), Path: p}
	}
	return entries
}

// Fuzzy searches entries by name using fuzzy matching.
// Returns results sorted by match score (best first).
func Fuzzy(entries []Entry, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, entryNames(entries))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FuzzySearchBookmarks searches every bookmark of store by name.
func FuzzySearchBookmarks(store *model.Store, query string) []SearchResult {
	return Fuzzy(Bookmarks(store, model.FilterAll), query)
}
