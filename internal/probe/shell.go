package probe

import (
	"os"
	"strings"
)

// scriptHosts maps a file manager to the prefix of the variables it
// exports when running a user script.
var scriptHosts = []struct {
	process string
	prefix  string
}{
	{"nautilus", "NAUTILUS_SCRIPT_"},
	{"nemo", "NEMO_SCRIPT_"},
	{"caja", "CAJA_SCRIPT_"},
}

// ScriptShell reads the window state that Nautilus-style file managers pass
// to scripts launched from their context menu.
type ScriptShell struct {
	Getenv func(string) string
	Getwd  func() (string, error)
}

// NewScriptShell returns a ScriptShell backed by the process environment.
func NewScriptShell() *ScriptShell {
	return &ScriptShell{Getenv: os.Getenv, Getwd: os.Getwd}
}

// Foreground returns the window of the file manager that launched us.
func (s *ScriptShell) Foreground() (Window, error) {
	for _, host := range scriptHosts {
		selected := s.Getenv(host.prefix + "SELECTED_FILE_PATHS")
		uri := s.Getenv(host.prefix + "CURRENT_URI")
		if selected == "" && uri == "" {
			continue
		}
		w := &scriptWindow{process: host.process, uri: uri}
		for _, line := range strings.Split(selected, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				w.selected = append(w.selected, line)
			}
		}
		if s.Getwd != nil {
			w.cwd, _ = s.Getwd()
		}
		return w, nil
	}
	return nil, ErrNoWindow
}

// Focused is the same window; script hosts expose only one.
func (s *ScriptShell) Focused() (Window, error) {
	return s.Foreground()
}

type scriptWindow struct {
	process  string
	selected []string
	uri      string
	cwd      string
}

func (w *scriptWindow) Process() string { return w.process }

func (w *scriptWindow) SelectedItem() (string, error) {
	if len(w.selected) == 0 {
		return "", ErrUnsupported
	}
	return w.selected[0], nil
}

// CurrentFolder is not exported by script hosts; the URL step covers it.
func (w *scriptWindow) CurrentFolder() (string, error) {
	return "", ErrUnsupported
}

func (w *scriptWindow) LocationURL() (string, error) {
	if w.uri == "" {
		return "", ErrUnsupported
	}
	return w.uri, nil
}

func (w *scriptWindow) LocationName() (string, error) {
	if w.cwd == "" {
		return "", ErrUnsupported
	}
	return w.cwd, nil
}

// StaticWindow is a window described by command-line flags. Hosts that pass
// paths explicitly are trusted to be file managers.
type StaticWindow struct {
	App      string
	Selected string
	Location string
}

func (w StaticWindow) Process() string {
	if w.App == "" {
		return "explorer"
	}
	return w.App
}

func (w StaticWindow) SelectedItem() (string, error) {
	if w.Selected == "" {
		return "", ErrUnsupported
	}
	return w.Selected, nil
}

func (w StaticWindow) CurrentFolder() (string, error) {
	if w.Location == "" || isURL(w.Location) {
		return "", ErrUnsupported
	}
	return w.Location, nil
}

func (w StaticWindow) LocationURL() (string, error) {
	if !isURL(w.Location) {
		return "", ErrUnsupported
	}
	return w.Location, nil
}

func (w StaticWindow) LocationName() (string, error) {
	if w.Location == "" {
		return "", ErrUnsupported
	}
	return w.Location, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "file://")
}

// StaticShell always reports the same window.
type StaticShell struct {
	Window StaticWindow
}

func (s StaticShell) Foreground() (Window, error) { return s.Window, nil }

func (s StaticShell) Focused() (Window, error) { return nil, ErrNoWindow }
