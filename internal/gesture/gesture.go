// Package gesture tells a single tap of the hotkey from a double tap.
package gesture

// Action is what a completed gesture asks for.
type Action int

const (
	ActionNone Action = iota
	ActionFolders
	ActionFiles
)

func (a Action) String() string {
	switch a {
	case ActionFolders:
		return "folders"
	case ActionFiles:
		return "files"
	}
	return "none"
}

// State is the debouncer state.
type State int

const (
	Idle State = iota
	AwaitingSecondTap
)

// Token identifies a pending expiry. Only the latest token resolves.
type Token uint64

// Debouncer counts taps inside one window. The caller arranges for Expire to
// be called with the returned token once the window has elapsed.
type Debouncer struct {
	state State
	taps  int
	token Token
}

// State returns the current state.
func (d *Debouncer) State() State {
	return d.state
}

// Tap records a tap. When it starts a new window it returns the window's
// token and schedule=true; further taps in the same window only count.
func (d *Debouncer) Tap() (Token, bool) {
	if d.state == AwaitingSecondTap {
		d.taps++
		return d.token, false
	}
	d.token++
	d.state = AwaitingSecondTap
	d.taps = 1
	return d.token, true
}

// Expire closes the window identified by token. One tap opens the folder
// manager, two or more open the file manager. Stale tokens yield ActionNone.
func (d *Debouncer) Expire(token Token) Action {
	if d.state != AwaitingSecondTap || token != d.token {
		return ActionNone
	}
	taps := d.taps
	d.state = Idle
	d.taps = 0
	if taps >= 2 {
		return ActionFiles
	}
	return ActionFolders
}
