package model

import (
	"path/filepath"
	"strings"
)

// TypeFilter narrows the file list to a family of extensions.
type TypeFilter int

const (
	FilterAll TypeFilter = iota
	FilterAudio
	FilterVideo
	FilterDocument
	FilterCode
	FilterExe
)

// TypeFilters lists every filter in display order.
var TypeFilters = []TypeFilter{FilterAll, FilterAudio, FilterVideo, FilterDocument, FilterCode, FilterExe}

var filterExtensions = map[TypeFilter][]string{
	FilterAudio:    {".mp3", ".wav", ".flac", ".m4a", ".ogg"},
	FilterVideo:    {".mp4", ".mkv", ".avi", ".mov"},
	FilterDocument: {".pdf", ".docx", ".txt", ".xlsx", ".pptx"},
	FilterCode:     {".py", ".cpp", ".java", ".js", ".html", ".css"},
	FilterExe:      {".exe", ".bat", ".cmd", ".msi"},
}

// String returns the filter name as shown in the filter selector.
func (f TypeFilter) String() string {
	switch f {
	case FilterAudio:
		return "Audio"
	case FilterVideo:
		return "Video"
	case FilterDocument:
		return "Document"
	case FilterCode:
		return "Code"
	case FilterExe:
		return "Exe"
	default:
		return "All"
	}
}

// ParseTypeFilter parses a filter name case-insensitively.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	for _, f := range TypeFilters {
		if strings.EqualFold(f.String(), s) {
			return f, true
		}
	}
	return FilterAll, false
}

// Next cycles to the following filter, wrapping to All.
func (f TypeFilter) Next() TypeFilter {
	return TypeFilters[(int(f)+1)%len(TypeFilters)]
}

// Match reports whether path ends with one of the filter's extensions.
// FilterAll matches every path.
func (f TypeFilter) Match(path string) bool {
	exts, ok := filterExtensions[f]
	if !ok {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsExecutable reports whether path looks like something that can be run elevated.
func IsExecutable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".bat", ".cmd", ".msi":
		return true
	}
	return false
}
