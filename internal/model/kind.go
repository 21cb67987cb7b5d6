package model

import "os"

// Kind distinguishes the file bookmark store from the folder bookmark store.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Title returns the display title used for the manager of this kind.
func (k Kind) Title() string {
	if k == KindFolder {
		return "Absolute Folders"
	}
	return "Absolute Files"
}

// ParseKind parses "file"/"files" or "folder"/"folders".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "file", "files":
		return KindFile, true
	case "folder", "folders", "dir", "dirs":
		return KindFolder, true
	}
	return KindFile, false
}

// Exists reports whether path currently exists as a regular file (file kind)
// or a directory (folder kind).
func (k Kind) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if k == KindFolder {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}
