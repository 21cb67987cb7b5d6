package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/af/internal/tui/layout"
)

// Mode is the interaction mode of the dialog.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeAdd
	ModeRename
	ModeConfirm
	ModeHelp
)

// Tab selects the list shown in the dialog.
type Tab int

const (
	TabSaved Tab = iota
	TabRecent
	TabAutoOpen
)

func (t Tab) String() string {
	switch t {
	case TabRecent:
		return "Recent"
	case TabAutoOpen:
		return "Auto-open"
	default:
		return "Saved"
	}
}

// MessageType decides how the message line is colored.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// ConfirmAction is the destructive action waiting for confirmation.
type ConfirmAction int

const (
	ConfirmRemove ConfirmAction = iota
	ConfirmRemoveRecent
	ConfirmClearRecent
	ConfirmForgetFolder
)

// ConfirmState holds the pending confirmation.
type ConfirmState struct {
	Action ConfirmAction
	Row    Row // target row; unused for ConfirmClearRecent
}

// Prompt is the question shown in the confirm modal.
func (c ConfirmState) Prompt() string {
	switch c.Action {
	case ConfirmRemoveRecent:
		return "Remove \"" + c.Row.Title() + "\" from recent?"
	case ConfirmClearRecent:
		return "Clear the recent list?"
	case ConfirmForgetFolder:
		return "Stop reopening \"" + c.Row.Path + "\" after restart?"
	default:
		return "Remove bookmark \"" + c.Row.Name + "\"?"
	}
}

// InputState holds the name prompt and the filter input.
type InputState struct {
	Name        textinput.Model // name for add and rename
	Filter      textinput.Model // fuzzy filter
	FilterQuery string          // active filter query (persists after closing filter)
	EditName    string          // bookmark being renamed
}

// NewInputState creates an InputState with initialized inputs.
func NewInputState(cfg layout.LayoutConfig) InputState {
	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.CharLimit = cfg.Input.NameCharLimit
	nameInput.Width = cfg.Input.StandardWidth

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter..."
	filterInput.CharLimit = cfg.Input.FilterCharLimit
	filterInput.Width = cfg.Input.FilterWidth

	return InputState{
		Name:   nameInput,
		Filter: filterInput,
	}
}

// ResetName clears the name prompt.
func (s *InputState) ResetName() {
	s.Name.Reset()
	s.Name.Blur()
	s.EditName = ""
}

// ResetFilter clears the filter state.
func (s *InputState) ResetFilter() {
	s.Filter.Reset()
	s.Filter.Blur()
	s.FilterQuery = ""
}
