package tui_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/probe"
	"github.com/nikbrunner/af/internal/session"
	"github.com/nikbrunner/af/internal/tui"
)

type memStorage struct {
	store *model.Store
	saves int
}

func (m *memStorage) Load() (*model.Store, error) { return m.store, nil }

func (m *memStorage) Save(*model.Store) error {
	m.saves++
	return nil
}

type fakeLauncher struct {
	opened   []string
	elevated []string
}

func (l *fakeLauncher) Open(path string) error {
	l.opened = append(l.opened, path)
	return nil
}

func (l *fakeLauncher) RunElevated(path string) error {
	l.elevated = append(l.elevated, path)
	return nil
}

type fixture struct {
	dir      string
	store    *model.Store
	launcher *fakeLauncher
	copied   *[]string
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	assert.NilError(t, os.WriteFile(p, []byte("x"), 0644))
	return p
}

// fileFixture creates three file bookmarks: Budget, Notes and Song.
func fileFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	store := model.NewStore(model.KindFile)
	assert.NilError(t, store.Add("Budget", touch(t, dir, "b.xlsx")))
	assert.NilError(t, store.Add("Notes", touch(t, dir, "n.txt")))
	assert.NilError(t, store.Add("Song", touch(t, dir, "s.mp3")))
	return fixture{dir: dir, store: store, launcher: &fakeLauncher{}, copied: &[]string{}}
}

func (f fixture) app(t *testing.T, candidate string) tui.App {
	t.Helper()
	var shell probe.Shell
	if candidate != "" {
		w := probe.StaticWindow{Selected: candidate}
		if f.store.Kind == model.KindFolder {
			w = probe.StaticWindow{Location: candidate}
		}
		shell = probe.StaticShell{Window: w}
	}

	s := session.Open(session.Params{
		Kind:     f.store.Kind,
		Storage:  &memStorage{store: f.store},
		Shell:    shell,
		Launcher: f.launcher,
		Logger:   zerolog.Nop(),
	})

	copied := f.copied
	return tui.NewApp(tui.AppParams{
		Session: s,
		Clipboard: func(text string) error {
			*copied = append(*copied, text)
			return nil
		},
	})
}

func press(t *testing.T, app tui.App, keys ...string) (tui.App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		case "ctrl+b":
			msg = tea.KeyMsg{Type: tea.KeyCtrlB}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = app.Update(msg)
		app = updated.(tui.App)
	}
	return app, cmd
}

func names(app tui.App) []string {
	var out []string
	for _, r := range app.Rows() {
		out = append(out, r.Name)
	}
	return out
}

func TestApp_Navigation_JK(t *testing.T) {
	app := fileFixture(t).app(t, "")

	if app.Cursor() != 0 {
		t.Errorf("expected initial cursor 0, got %d", app.Cursor())
	}

	app, _ = press(t, app, "j")
	if app.Cursor() != 1 {
		t.Errorf("after j, expected cursor 1, got %d", app.Cursor())
	}

	app, _ = press(t, app, "k", "k")
	if app.Cursor() != 0 {
		t.Errorf("k at top should stay at 0, got %d", app.Cursor())
	}

	app, _ = press(t, app, "j", "j", "j")
	if app.Cursor() != 2 {
		t.Errorf("j at bottom should stay at 2, got %d", app.Cursor())
	}
}

func TestApp_Navigation_GG_G(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "G")
	assert.Equal(t, app.Cursor(), 2)

	app, _ = press(t, app, "g")
	assert.Equal(t, app.Cursor(), 2, "single g must wait for the second")

	app, _ = press(t, app, "g")
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_SavedListInDisplayOrder(t *testing.T) {
	f := fileFixture(t)
	_, _ = f.store.TogglePin("Song")
	app := f.app(t, "")

	assert.DeepEqual(t, names(app), []string{"Song", "Budget", "Notes"})
	assert.Check(t, app.Rows()[0].Pinned)
}

func TestApp_Open_LaunchesAndCloses(t *testing.T) {
	f := fileFixture(t)
	app := f.app(t, "")

	app, cmd := press(t, app, "j", "enter")

	want := f.store.Entries["Notes"]
	assert.DeepEqual(t, f.launcher.opened, []string{want})
	assert.Equal(t, app.Opened(), want)
	assert.Check(t, cmd != nil, "open should close the dialog")
	assert.DeepEqual(t, app.Session().Store().Recent, []string{want})
}

func TestApp_Open_EmptyListDoesNothing(t *testing.T) {
	f := fixture{store: model.NewStore(model.KindFile), launcher: &fakeLauncher{}, copied: &[]string{}}
	app := f.app(t, "")

	app, cmd := press(t, app, "enter")
	assert.Check(t, cmd == nil)
	assert.Check(t, is.Len(f.launcher.opened, 0))
	assert.Equal(t, app.Opened(), "")
}

func TestApp_Add_UsesSuggestedName(t *testing.T) {
	f := fileFixture(t)
	candidate := touch(t, f.dir, "Report.pdf")
	app := f.app(t, candidate)

	app, _ = press(t, app, "a")
	assert.Equal(t, app.Mode(), tui.ModeAdd)

	app, _ = press(t, app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)

	got, ok := app.Session().Store().Path("Report.pdf")
	assert.Check(t, ok)
	assert.Equal(t, got, candidate)
	assert.Equal(t, app.Rows()[app.Cursor()].Name, "Report.pdf")

	msg, typ := app.Message()
	assert.Equal(t, msg, "Added Report.pdf")
	assert.Equal(t, typ, tui.MessageSuccess)
}

func TestApp_Add_TypedName(t *testing.T) {
	f := fileFixture(t)
	candidate := touch(t, f.dir, "Report.pdf")
	app := f.app(t, candidate)

	app, _ = press(t, app, "a", "ctrl+u", "Quarterly", "enter")

	got, ok := app.Session().Store().Path("Quarterly")
	assert.Check(t, ok)
	assert.Equal(t, got, candidate)
}

func TestApp_Add_DuplicateNameAborts(t *testing.T) {
	f := fileFixture(t)
	candidate := touch(t, f.dir, "other.txt")
	app := f.app(t, candidate)

	app, _ = press(t, app, "a", "ctrl+u", "Notes", "enter")

	msg, typ := app.Message()
	assert.Equal(t, msg, "This name already exists.")
	assert.Equal(t, typ, tui.MessageWarning)
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Session().Store().Len(), 3)
	assert.Equal(t, app.Session().Store().Entries["Notes"], filepath.Join(f.dir, "n.txt"))
}

func TestApp_Add_WithoutCandidate(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "a")

	msg, typ := app.Message()
	assert.Equal(t, msg, "No file selected in Explorer to add.")
	assert.Equal(t, typ, tui.MessageWarning)
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_Add_Cancel(t *testing.T) {
	f := fileFixture(t)
	app := f.app(t, touch(t, f.dir, "Report.pdf"))

	app, _ = press(t, app, "a", "esc")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Session().Store().Len(), 3)
}

func TestApp_Rename(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "e")
	assert.Equal(t, app.Mode(), tui.ModeRename)

	app, _ = press(t, app, "ctrl+u", "Costs", "enter")

	store := app.Session().Store()
	_, oldExists := store.Path("Budget")
	_, newExists := store.Path("Costs")
	assert.Check(t, !oldExists)
	assert.Check(t, newExists)
	assert.Equal(t, app.Rows()[app.Cursor()].Name, "Costs")
}

func TestApp_Rename_DuplicateName(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "e", "ctrl+u", "Song", "enter")

	msg, _ := app.Message()
	assert.Equal(t, msg, "This name already exists.")
	_, ok := app.Session().Store().Path("Budget")
	assert.Check(t, ok)
}

func TestApp_Remove_Confirm(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "d")
	assert.Equal(t, app.Mode(), tui.ModeConfirm)

	app, _ = press(t, app, "y")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.DeepEqual(t, names(app), []string{"Notes", "Song"})
}

func TestApp_Remove_Cancel(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "d", "n")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Session().Store().Len(), 3)
}

func TestApp_Pin(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "G", "*")

	assert.Check(t, app.Session().Store().IsPinned("Song"))
	assert.DeepEqual(t, names(app), []string{"Song", "Budget", "Notes"})
	assert.Equal(t, app.Cursor(), 0, "cursor should follow the pinned bookmark")
}

func TestApp_Reorder_RequiresCustomSort(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "J")

	msg, typ := app.Message()
	assert.Equal(t, msg, "Switch to custom order (s) to reorder.")
	assert.Equal(t, typ, tui.MessageWarning)
}

func TestApp_Reorder_Custom(t *testing.T) {
	f := fileFixture(t)
	f.store.SortMode = model.SortCustom
	app := f.app(t, "")

	app, _ = press(t, app, "J")

	assert.DeepEqual(t, names(app), []string{"Notes", "Budget", "Song"})
	assert.Equal(t, app.Cursor(), 1)
}

func TestApp_Sort_Cycles(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "s")

	assert.Equal(t, app.Session().Store().SortMode, model.SortLowercase)
	assert.DeepEqual(t, names(app), []string{"Song", "Notes", "Budget"})
	assert.Equal(t, app.Rows()[app.Cursor()].Name, "Budget", "cursor should stay on the same bookmark")
}

func TestApp_ShowPath_Toggles(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "p")
	assert.Check(t, app.Session().Store().ShowPath)

	app, _ = press(t, app, "p")
	assert.Check(t, !app.Session().Store().ShowPath)
}

func TestApp_TypeFilter(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "f")

	assert.DeepEqual(t, names(app), []string{"Song"})
	msg, _ := app.Message()
	assert.Equal(t, msg, "Type: Audio")
}

func TestApp_FuzzyFilter(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "/")
	assert.Equal(t, app.Mode(), tui.ModeFilter)

	app, _ = press(t, app, "so")
	assert.DeepEqual(t, names(app), []string{"Song"})
	assert.Check(t, len(app.Rows()[0].Matched) > 0)

	app, _ = press(t, app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.DeepEqual(t, names(app), []string{"Song"})

	// Esc in normal mode clears the query before closing.
	app, cmd := press(t, app, "esc")
	assert.Check(t, cmd == nil)
	assert.Equal(t, len(app.Rows()), 3)
}

func TestApp_Yank_CopiesPath(t *testing.T) {
	f := fileFixture(t)
	app := f.app(t, "")

	app, _ = press(t, app, "y")

	assert.DeepEqual(t, *f.copied, []string{f.store.Entries["Budget"]})
	_, typ := app.Message()
	assert.Equal(t, typ, tui.MessageSuccess)
}

func TestApp_RecentTab(t *testing.T) {
	f := fileFixture(t)
	f.store.Recent = []string{f.store.Entries["Song"], f.store.Entries["Notes"]}
	app := f.app(t, "")

	app, _ = press(t, app, "tab")
	assert.Equal(t, app.Tab(), tui.TabRecent)
	assert.DeepEqual(t, names(app), []string{"s.mp3", "n.txt"})

	app, _ = press(t, app, "d", "y")
	assert.DeepEqual(t, app.Session().Store().Recent, []string{f.store.Entries["Notes"]})

	app, _ = press(t, app, "x", "y")
	assert.Check(t, is.Len(app.Session().Store().Recent, 0))
	assert.Check(t, is.Len(app.Rows(), 0))

	app, _ = press(t, app, "tab")
	assert.Equal(t, app.Tab(), tui.TabSaved)
}

func TestApp_ClearRecent_Empty(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "x")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	msg, _ := app.Message()
	assert.Equal(t, msg, "Recent list is empty.")
}

func TestApp_RunElevated(t *testing.T) {
	f := fileFixture(t)
	setup := touch(t, f.dir, "setup.exe")
	assert.NilError(t, f.store.Add("Setup", setup))
	app := f.app(t, "")

	// Budget is not executable.
	app, cmd := press(t, app, "R")
	assert.Check(t, cmd == nil)
	assert.Check(t, is.Len(f.launcher.elevated, 0))
	_, typ := app.Message()
	assert.Equal(t, typ, tui.MessageWarning)

	app, cmd = press(t, app, "j", "j", "R")
	assert.Equal(t, app.Rows()[app.Cursor()].Name, "Setup")
	assert.DeepEqual(t, f.launcher.elevated, []string{setup})
	assert.Check(t, cmd != nil)
}

func TestApp_FolderManager_AutoLoadAndAutoOpen(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	assert.NilError(t, os.Mkdir(work, 0755))

	store := model.NewStore(model.KindFolder)
	assert.NilError(t, store.Add("Work", work))
	f := fixture{dir: dir, store: store, launcher: &fakeLauncher{}, copied: &[]string{}}
	app := f.app(t, "")

	app, _ = press(t, app, "A")
	assert.Check(t, app.Session().Store().AutoLoadLastFolder)

	// Opening a folder with auto-load on remembers it.
	app, _ = press(t, app, "enter")
	assert.DeepEqual(t, app.Session().Store().LastOpenedFolders, []string{work})

	app, _ = press(t, app, "O")
	assert.Equal(t, app.Tab(), tui.TabAutoOpen)
	assert.Equal(t, len(app.Rows()), 1)
	assert.Equal(t, app.Rows()[0].Path, work)

	app, _ = press(t, app, "d", "y")
	assert.Check(t, is.Len(app.Session().Store().LastOpenedFolders, 0))

	app, _ = press(t, app, "esc")
	assert.Equal(t, app.Tab(), tui.TabSaved)
}

func TestApp_FileManager_IgnoresFolderToggles(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "A", "O")

	assert.Check(t, !app.Session().Store().AutoLoadLastFolder)
	assert.Equal(t, app.Tab(), tui.TabSaved)
}

func gestureApp(t *testing.T) tui.App {
	t.Helper()
	opener := func(kind model.Kind) *session.Session {
		return session.Open(session.Params{
			Kind:    kind,
			Storage: &memStorage{store: model.NewStore(kind)},
			Logger:  zerolog.Nop(),
		})
	}
	return tui.NewApp(tui.AppParams{
		Session:   opener(model.KindFile),
		Open:      opener,
		DoubleTap: time.Millisecond,
	})
}

func TestApp_Gesture_SingleTapOpensFolders(t *testing.T) {
	app := gestureApp(t)
	app, _ = press(t, app, "tab")

	app, cmd := press(t, app, "ctrl+b")
	assert.Check(t, cmd != nil, "first tap should schedule the expiry")

	updated, _ := app.Update(cmd())
	app = updated.(tui.App)

	assert.Equal(t, app.Session().Kind(), model.KindFolder)
	assert.Equal(t, app.Tab(), tui.TabSaved)
}

func TestApp_Gesture_DoubleTapOpensFiles(t *testing.T) {
	app := gestureApp(t)
	first := app.Session().ID()

	app, cmd := press(t, app, "ctrl+b")
	app, second := press(t, app, "ctrl+b")
	assert.Check(t, second == nil, "second tap should not schedule again")

	updated, _ := app.Update(cmd())
	app = updated.(tui.App)

	assert.Equal(t, app.Session().Kind(), model.KindFile)
	assert.Check(t, app.Session().ID() != first, "manager should be reopened fresh")
}

func TestApp_Gesture_CustomChord(t *testing.T) {
	s := session.Open(session.Params{Kind: model.KindFile, Logger: zerolog.Nop()})
	app := tui.NewApp(tui.AppParams{Session: s, Gesture: "ctrl+g"})

	_, cmd := press(t, app, "ctrl+b")
	assert.Check(t, cmd == nil, "default chord should be replaced")
}

func TestApp_Help(t *testing.T) {
	app := fileFixture(t).app(t, "")

	app, _ = press(t, app, "?")
	assert.Equal(t, app.Mode(), tui.ModeHelp)

	app, cmd := press(t, app, "q")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Check(t, cmd == nil, "q in help should only close help")
}

func TestApp_Quit(t *testing.T) {
	app := fileFixture(t).app(t, "")

	_, cmd := press(t, app, "q")
	assert.Check(t, cmd != nil)
}
