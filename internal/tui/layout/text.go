package layout

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	textLen := utf8.RuneCountInString(text)

	if textLen <= maxWidth {
		return text, false
	}

	if maxWidth <= ellipsisLen {
		runes := []rune(cfg.Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	truncLen := maxWidth - ellipsisLen
	return string(runes[:truncLen]) + cfg.Ellipsis, true
}

// TruncateWithPrefix truncates text while keeping a marker prefix intact.
// Example: TruncateWithPrefix("Development", 10, "* ", cfg) -> "* Deve..."
func TruncateWithPrefix(text string, maxWidth int, prefix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text
	if utf8.RuneCountInString(combined) <= maxWidth {
		return combined, false
	}

	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen+utf8.RuneCountInString(cfg.Ellipsis) >= maxWidth {
		return TruncateText(combined, maxWidth, cfg)
	}

	truncated, _ := TruncateText(text, maxWidth-prefixLen, cfg)
	return prefix + truncated, true
}

// TruncatePathFromLeft keeps the end of a path, where the file name is.
// Example: TruncatePathFromLeft("/home/me/docs/report.pdf", 14, cfg) -> ".../report.pdf"
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(path)
	if len(runes) <= maxWidth {
		return path
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	if maxWidth <= ellipsisLen {
		return string([]rune(cfg.Ellipsis)[:maxWidth])
	}
	keep := maxWidth - ellipsisLen
	return cfg.Ellipsis + string(runes[len(runes)-keep:])
}
