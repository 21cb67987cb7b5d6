package tui

import (
	"strings"

	"github.com/nikbrunner/af/internal/model"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move enter:open"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, tab)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, /, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}, {Key: "↑/↓", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeAdd, ModeRename:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeConfirm:
		return HintSet{
			Action: []Hint{{Key: "y/Enter", Desc: "confirm"}},
			System: []Hint{{Key: "n/Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for the list, which differ per tab.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "saved/recent"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "filter"},
			{Key: "y", Desc: "copy"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "close"},
		},
	}

	switch a.tab {
	case TabRecent:
		hints.Edit = []Hint{
			{Key: "d", Desc: "remove"},
			{Key: "x", Desc: "clear"},
		}
	case TabAutoOpen:
		hints.Edit = []Hint{
			{Key: "d", Desc: "forget"},
			{Key: "O", Desc: "back"},
		}
	default:
		hints.Edit = []Hint{
			{Key: "a", Desc: "add"},
			{Key: "e", Desc: "rename"},
			{Key: "d", Desc: "del"},
			{Key: "*", Desc: "pin"},
		}
	}
	return hints
}

// getToggleHints returns the toggles available for the current manager.
func (a App) getToggleHints() []Hint {
	hints := []Hint{
		{Key: "s", Desc: "sort"},
		{Key: "p", Desc: "paths"},
	}
	if a.session.Kind() == model.KindFile {
		hints = append(hints, Hint{Key: "f", Desc: "type"})
	} else {
		hints = append(hints, Hint{Key: "A", Desc: "auto-load"}, Hint{Key: "O", Desc: "auto-open"})
	}
	return hints
}
