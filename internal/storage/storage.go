package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/nikbrunner/af/internal/model"
)

// Storage defines the interface for persisting a bookmark store.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// document is the on-disk shape shared by both kinds.
type document struct {
	SortMode string            `json:"sortMode"`
	Files    map[string]string `json:"files"`
	Order    *[]string         `json:"order,omitempty"`
	Pinned   []string          `json:"pinned"`
	ShowPath bool              `json:"showPath"`

	RecentFiles   *[]string `json:"recentFiles,omitempty"`
	RecentFolders *[]string `json:"recentFolders,omitempty"`

	AutoLoadLastFolder *bool     `json:"autoLoadLastFolder,omitempty"`
	LastOpenedFolders  *[]string `json:"lastOpenedFolders,omitempty"`
	LastSystemUptime   *int64    `json:"lastSystemUptime,omitempty"`
}

// JSONStorage implements Storage using one JSON file per kind.
type JSONStorage struct {
	path string
	kind model.Kind
}

// NewJSONStorage creates a new JSONStorage for kind at the given file path.
func NewJSONStorage(path string, kind model.Kind) *JSONStorage {
	return &JSONStorage{path: path, kind: kind}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Kind returns the kind of store this file holds.
func (s *JSONStorage) Kind() model.Kind {
	return s.kind
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(s.kind), nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return decode(doc, s.kind), nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(encode(store), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// decode builds a normalized store from a document.
func decode(doc document, kind model.Kind) *model.Store {
	store := model.NewStore(kind)
	store.SortMode = model.ParseSortMode(doc.SortMode)
	store.ShowPath = doc.ShowPath
	if doc.Files != nil {
		store.Entries = doc.Files
	}

	// A missing order defaults to the bookmark names.
	if doc.Order != nil {
		store.Order = *doc.Order
	} else {
		store.Order = nil
	}

	for _, n := range doc.Pinned {
		store.Pinned[n] = true
	}

	if kind == model.KindFolder {
		if doc.RecentFolders != nil {
			store.Recent = *doc.RecentFolders
		}
		if doc.AutoLoadLastFolder != nil {
			store.AutoLoadLastFolder = *doc.AutoLoadLastFolder
		}
		if doc.LastOpenedFolders != nil {
			store.LastOpenedFolders = *doc.LastOpenedFolders
		}
		if doc.LastSystemUptime != nil {
			store.LastSystemUptime = *doc.LastSystemUptime
		}
	} else if doc.RecentFiles != nil {
		store.Recent = *doc.RecentFiles
	}

	store.Normalize()
	return store
}

// encode flattens a store into its document form. Folder-only keys are
// written for folder stores only.
func encode(store *model.Store) document {
	order := slices.Clone(store.Order)
	if order == nil {
		order = []string{}
	}
	files := store.Entries
	if files == nil {
		files = map[string]string{}
	}
	recent := slices.Clone(store.Recent)
	if recent == nil {
		recent = []string{}
	}

	doc := document{
		SortMode: string(store.SortMode),
		Files:    files,
		Order:    &order,
		Pinned:   store.PinnedNames(),
		ShowPath: store.ShowPath,
	}

	if store.Kind == model.KindFolder {
		auto := store.AutoLoadLastFolder
		last := slices.Clone(store.LastOpenedFolders)
		if last == nil {
			last = []string{}
		}
		uptime := store.LastSystemUptime
		doc.RecentFolders = &recent
		doc.AutoLoadLastFolder = &auto
		doc.LastOpenedFolders = &last
		doc.LastSystemUptime = &uptime
	} else {
		doc.RecentFiles = &recent
	}
	return doc
}

// DefaultDir returns the default data directory: ~/.config/af
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "af"), nil
}

// DefaultStorePath returns the JSON file for kind:
// ~/.config/af/AbsoluteFiles.json or ~/.config/af/AbsoluteFolders.json
func DefaultStorePath(kind model.Kind) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StoreFileName(kind)), nil
}

// StoreFileName is the JSON file name used for kind.
func StoreFileName(kind model.Kind) string {
	if kind == model.KindFolder {
		return "AbsoluteFolders.json"
	}
	return "AbsoluteFiles.json"
}

// OpenStorage opens the appropriate storage backend for kind in the default
// directory.
func OpenStorage(kind model.Kind) (Storage, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return OpenStorageIn(dir, kind)
}

// OpenStorageIn opens the storage for kind inside dir.
// Prefers SQLite if af.db exists there, otherwise falls back to JSON.
func OpenStorageIn(dir string, kind model.Kind) (Storage, error) {
	sqlitePath := filepath.Join(dir, SQLiteFileName)

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		db, err := NewSQLiteStorage(sqlitePath)
		if err != nil {
			return nil, err
		}
		return db.ForKind(kind), nil
	}

	// Fall back to JSON
	return NewJSONStorage(filepath.Join(dir, StoreFileName(kind)), kind), nil
}
