package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/af/internal/gesture"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/search"
	"github.com/nikbrunner/af/internal/session"
	"github.com/nikbrunner/af/internal/tui/layout"
)

// DefaultDoubleTap is how long the gesture waits for a second tap.
const DefaultDoubleTap = 400 * time.Millisecond

// SessionOpener opens a fresh session for kind. The dialog uses it when the
// gesture switches managers.
type SessionOpener func(kind model.Kind) *session.Session

// gestureExpiredMsg is delivered when the double-tap window closes.
type gestureExpiredMsg struct {
	token gesture.Token
}

// App is the bubbletea model of the manager dialog.
type App struct {
	session   *session.Session
	open      SessionOpener
	keys      KeyMap
	styles    Styles
	clipboard func(string) error

	layoutConfig layout.LayoutConfig

	mode    Mode
	tab     Tab
	cursor  int
	rows    []Row
	filter  model.TypeFilter
	input   InputState
	confirm ConfirmState

	gesture   gesture.Debouncer
	doubleTap time.Duration

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Path launched by the dialog before it closed.
	opened string

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session      *session.Session
	Open         SessionOpener        // optional, the gesture does nothing if nil
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Gesture      string               // optional chord, overrides Keys.Gesture
	DoubleTap    time.Duration        // optional, DefaultDoubleTap if zero
	Clipboard    func(string) error   // optional, system clipboard if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}
	if params.Gesture != "" {
		keys.Gesture = GestureBinding(params.Gesture)
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	doubleTap := params.DoubleTap
	if doubleTap <= 0 {
		doubleTap = DefaultDoubleTap
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	app := App{
		session:      params.Session,
		open:         params.Open,
		keys:         keys,
		styles:       styles,
		clipboard:    copyFn,
		layoutConfig: layoutConfig,
		input:        NewInputState(layoutConfig),
		doubleTap:    doubleTap,
		width:        80,
		height:       24,
	}

	app.refreshRows()
	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Rows returns the rows of the current list.
func (a App) Rows() []Row {
	return a.rows
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Tab returns the list being shown.
func (a App) Tab() Tab {
	return a.tab
}

// Session returns the session the dialog works on.
func (a App) Session() *session.Session {
	return a.session
}

// Message returns the current status message.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Opened returns the path launched by the dialog, if any.
func (a App) Opened() string {
	return a.opened
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case gestureExpiredMsg:
		return a.handleGestureExpired(msg)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Gesture) {
			return a.handleGestureTap()
		}

		switch a.mode {
		case ModeHelp:
			return a.handleHelpMode(msg)
		case ModeFilter:
			return a.handleFilterMode(msg)
		case ModeAdd, ModeRename:
			return a.handleNameMode(msg)
		case ModeConfirm:
			return a.handleConfirmMode(msg)
		default:
			return a.handleNormalMode(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// setMessage shows msg on the message line until the next key press.
func (a *App) setMessage(typ MessageType, msg string) {
	a.messageType = typ
	a.messageText = msg
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// refreshRows rebuilds the list for the current tab, filter and query.
func (a *App) refreshRows() {
	store := a.session.Store()

	var rows []Row
	switch a.tab {
	case TabRecent:
		for i, e := range search.Recent(store) {
			rows = append(rows, Row{Kind: RowRecent, Name: e.Name, Path: e.Path, Index: i})
		}
	case TabAutoOpen:
		for _, e := range store.AutoOpenFolders() {
			rows = append(rows, Row{Kind: RowAutoOpen, Path: e.Path, Index: e.Index})
		}
	default:
		for _, e := range search.Bookmarks(store, a.filter) {
			rows = append(rows, Row{
				Kind:   RowBookmark,
				Name:   e.Name,
				Path:   e.Path,
				Pinned: store.IsPinned(e.Name),
			})
		}
	}

	if a.input.FilterQuery != "" {
		rows = filterRows(rows, a.input.FilterQuery)
	}

	a.rows = rows
	a.clampCursor()
}

// filterRows keeps the rows whose title fuzzy-matches query, best first.
func filterRows(rows []Row, query string) []Row {
	entries := make([]search.Entry, len(rows))
	byEntry := make(map[search.Entry]Row, len(rows))
	for i, r := range rows {
		entries[i] = search.Entry{Name: r.Title(), Path: r.Path}
		byEntry[entries[i]] = r
	}

	results := search.Fuzzy(entries, query)
	filtered := make([]Row, 0, len(results))
	for _, res := range results {
		r := byEntry[res.Entry]
		r.Matched = res.MatchedIndexes
		filtered = append(filtered, r)
	}
	return filtered
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selectName moves the cursor to the bookmark called name, if listed.
func (a *App) selectName(name string) {
	for i, r := range a.rows {
		if r.Name == name {
			a.cursor = i
			return
		}
	}
}

// selectedRow returns the row under the cursor.
func (a App) selectedRow() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

func (a *App) setTab(tab Tab) {
	a.tab = tab
	a.cursor = 0
	a.refreshRows()
}

// handleGestureTap starts the double-tap window on the first tap.
func (a App) handleGestureTap() (tea.Model, tea.Cmd) {
	token, schedule := a.gesture.Tap()
	if !schedule {
		return a, nil
	}
	return a, tea.Tick(a.doubleTap, func(time.Time) tea.Msg {
		return gestureExpiredMsg{token: token}
	})
}

func (a App) handleGestureExpired(msg gestureExpiredMsg) (tea.Model, tea.Cmd) {
	switch a.gesture.Expire(msg.token) {
	case gesture.ActionFolders:
		return a.switchManager(model.KindFolder), nil
	case gesture.ActionFiles:
		return a.switchManager(model.KindFile), nil
	}
	return a, nil
}

// switchManager replaces the session with a fresh one for kind.
func (a App) switchManager(kind model.Kind) App {
	if a.open == nil {
		return a
	}
	next := a.open(kind)
	if next == nil {
		return a
	}

	a.session = next
	a.mode = ModeNormal
	a.tab = TabSaved
	a.cursor = 0
	a.filter = model.FilterAll
	a.input.ResetName()
	a.input.ResetFilter()
	a.refreshRows()
	a.setMessage(MessageInfo, kind.Title())
	return a
}

func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		if msg.String() == "esc" {
			if a.input.FilterQuery != "" {
				a.input.ResetFilter()
				a.refreshRows()
				return a, nil
			}
			if a.tab == TabAutoOpen {
				a.setTab(TabSaved)
				return a, nil
			}
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.rows) > 0 && a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Tab):
		if a.tab == TabSaved {
			a.setTab(TabRecent)
		} else {
			a.setTab(TabSaved)
		}

	case key.Matches(msg, a.keys.Open):
		return a.openSelected(false)

	case key.Matches(msg, a.keys.RunElevated):
		return a.openSelected(true)

	case key.Matches(msg, a.keys.Add):
		a.startAdd()

	case key.Matches(msg, a.keys.Rename):
		if row, ok := a.selectedRow(); ok && row.IsBookmark() {
			a.mode = ModeRename
			a.input.EditName = row.Name
			a.input.Name.SetValue(row.Name)
			a.input.Name.CursorEnd()
			a.input.Name.Focus()
		}

	case key.Matches(msg, a.keys.Delete):
		if row, ok := a.selectedRow(); ok {
			action := ConfirmRemove
			switch row.Kind {
			case RowRecent:
				action = ConfirmRemoveRecent
			case RowAutoOpen:
				action = ConfirmForgetFolder
			}
			a.confirm = ConfirmState{Action: action, Row: row}
			a.mode = ModeConfirm
		}

	case key.Matches(msg, a.keys.ClearRecent):
		if len(a.session.Store().Recent) == 0 {
			a.setMessage(MessageInfo, "Recent list is empty.")
			return a, nil
		}
		a.confirm = ConfirmState{Action: ConfirmClearRecent}
		a.mode = ModeConfirm

	case key.Matches(msg, a.keys.Pin):
		a.togglePin()

	case key.Matches(msg, a.keys.MoveUp):
		a.reorder(-1)

	case key.Matches(msg, a.keys.MoveDown):
		a.reorder(1)

	case key.Matches(msg, a.keys.Sort):
		row, _ := a.selectedRow()
		mode := a.session.CycleSort()
		a.refreshRows()
		a.selectName(row.Name)
		a.setMessage(MessageInfo, "Sort: "+mode.Label())

	case key.Matches(msg, a.keys.ShowPath):
		a.session.SetShowPath(!a.session.Store().ShowPath)

	case key.Matches(msg, a.keys.TypeFilter):
		if a.session.Kind() != model.KindFile {
			return a, nil
		}
		a.filter = a.filter.Next()
		a.cursor = 0
		a.refreshRows()
		a.setMessage(MessageInfo, "Type: "+a.filter.String())

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.input.Filter.SetValue(a.input.FilterQuery)
		a.input.Filter.CursorEnd()
		a.input.Filter.Focus()

	case key.Matches(msg, a.keys.Yank):
		if row, ok := a.selectedRow(); ok {
			if err := a.clipboard(row.Path); err != nil {
				a.setMessage(MessageError, "Copy failed: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, "Copied: "+row.Path)
			}
		}

	case key.Matches(msg, a.keys.AutoLoad):
		if a.session.Kind() != model.KindFolder {
			return a, nil
		}
		on := !a.session.Store().AutoLoadLastFolder
		a.session.SetAutoLoad(on)
		if on {
			a.setMessage(MessageSuccess, "Folders will reopen after a restart")
		} else {
			a.setMessage(MessageInfo, "Auto-load off")
		}

	case key.Matches(msg, a.keys.AutoOpen):
		if a.session.Kind() != model.KindFolder {
			return a, nil
		}
		if a.tab == TabAutoOpen {
			a.setTab(TabSaved)
		} else {
			a.setTab(TabAutoOpen)
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// openSelected launches the selected row and closes the dialog.
func (a App) openSelected(elevated bool) (tea.Model, tea.Cmd) {
	row, ok := a.selectedRow()
	if !ok {
		return a, nil
	}

	var err error
	if elevated {
		if !model.IsExecutable(row.Path) {
			a.setMessage(MessageWarning, "Only executables can run as administrator.")
			return a, nil
		}
		err = a.session.RunElevated(row.Path)
	} else {
		err = a.session.OpenEntry(row.Path)
	}
	if err != nil {
		a.setMessage(MessageError, "Open failed: "+err.Error())
		return a, nil
	}

	a.opened = row.Path
	return a, tea.Quit
}

// startAdd opens the name prompt for the path found in the explorer.
func (a *App) startAdd() {
	if _, ok := a.session.Candidate(); !ok {
		if a.session.Kind() == model.KindFile {
			a.setMessage(MessageWarning, "No file selected in Explorer to add.")
		} else {
			a.setMessage(MessageWarning, "No folder open in Explorer to add.")
		}
		return
	}
	a.mode = ModeAdd
	a.input.Name.SetValue(a.session.SuggestedName())
	a.input.Name.CursorEnd()
	a.input.Name.Focus()
}

func (a *App) togglePin() {
	row, ok := a.selectedRow()
	if !ok || !row.IsBookmark() {
		return
	}
	pinned, err := a.session.TogglePin(row.Name)
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.refreshRows()
	a.selectName(row.Name)
	if pinned {
		a.setMessage(MessageSuccess, "Pinned "+row.Name)
	} else {
		a.setMessage(MessageSuccess, "Unpinned "+row.Name)
	}
}

func (a *App) reorder(direction int) {
	row, ok := a.selectedRow()
	if !ok || !row.IsBookmark() {
		return
	}
	moved, err := a.session.Reorder(row.Name, direction)
	if errors.Is(err, model.ErrNotReorderable) {
		a.setMessage(MessageWarning, "Switch to custom order (s) to reorder.")
		return
	}
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	if moved {
		a.refreshRows()
		a.selectName(row.Name)
	}
}

func (a App) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.input.ResetFilter()
		a.mode = ModeNormal
		a.refreshRows()
		return a, nil

	case "enter":
		a.input.FilterQuery = strings.TrimSpace(a.input.Filter.Value())
		a.input.Filter.Blur()
		a.mode = ModeNormal
		a.refreshRows()
		return a, nil

	case "down", "ctrl+n":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
		return a, nil

	case "up", "ctrl+p":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input.Filter, cmd = a.input.Filter.Update(msg)
	a.input.FilterQuery = strings.TrimSpace(a.input.Filter.Value())
	a.cursor = 0
	a.refreshRows()
	return a, cmd
}

func (a App) handleNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.input.ResetName()
		a.mode = ModeNormal
		return a, nil

	case "enter":
		name := strings.TrimSpace(a.input.Name.Value())
		oldName := a.input.EditName
		adding := a.mode == ModeAdd
		a.input.ResetName()
		a.mode = ModeNormal

		var err error
		if adding {
			err = a.session.AddCandidate(name)
		} else {
			err = a.session.Rename(oldName, name)
		}
		if err != nil {
			a.showEditError(err)
			return a, nil
		}

		if adding {
			a.input.ResetFilter()
			a.tab = TabSaved
			a.setMessage(MessageSuccess, "Added "+name)
		} else {
			a.setMessage(MessageSuccess, "Renamed to "+name)
		}
		a.refreshRows()
		a.selectName(name)
		return a, nil
	}

	var cmd tea.Cmd
	a.input.Name, cmd = a.input.Name.Update(msg)
	return a, cmd
}

// showEditError turns a failed add or rename into a message.
func (a *App) showEditError(err error) {
	switch {
	case errors.Is(err, model.ErrNameExists):
		a.setMessage(MessageWarning, "This name already exists.")
	case errors.Is(err, model.ErrEmptyName):
		a.setMessage(MessageWarning, "Name cannot be empty.")
	case errors.Is(err, session.ErrNoCandidate):
		a.setMessage(MessageWarning, "No file selected in Explorer to add.")
	default:
		a.setMessage(MessageError, err.Error())
	}
}

func (a App) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.mode = ModeNormal
		a.performConfirm()
		return a, nil

	case "n", "N", "esc", "q":
		a.mode = ModeNormal
		a.setMessage(MessageInfo, "Cancelled")
		return a, nil
	}
	return a, nil
}

func (a *App) performConfirm() {
	c := a.confirm
	a.confirm = ConfirmState{}

	var err error
	var done string
	switch c.Action {
	case ConfirmRemove:
		err = a.session.Remove(c.Row.Name)
		done = "Removed " + c.Row.Name
	case ConfirmRemoveRecent:
		err = a.session.RemoveRecent(c.Row.Index)
		done = "Removed from recent"
	case ConfirmClearRecent:
		a.session.ClearRecent()
		done = "Recent list cleared"
	case ConfirmForgetFolder:
		err = a.session.ForgetFolder(c.Row.Index)
		done = "Folder will not reopen"
	}

	a.refreshRows()
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.setMessage(MessageSuccess, done)
}

func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	}
	return a, nil
}
