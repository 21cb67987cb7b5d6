package probe_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/af/internal/fileurl"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/probe"
)

var errRejected = errors.New("rejected")

type fakeWindow struct {
	process  string
	selected string
	folder   string
	url      string
	name     string
}

func orReject(s string) (string, error) {
	if s == "" {
		return "", errRejected
	}
	return s, nil
}

func (w fakeWindow) Process() string                { return w.process }
func (w fakeWindow) SelectedItem() (string, error)  { return orReject(w.selected) }
func (w fakeWindow) CurrentFolder() (string, error) { return orReject(w.folder) }
func (w fakeWindow) LocationURL() (string, error)   { return orReject(w.url) }
func (w fakeWindow) LocationName() (string, error)  { return orReject(w.name) }

type fakeShell struct {
	foreground probe.Window
	focused    probe.Window
}

func (s fakeShell) Foreground() (probe.Window, error) {
	if s.foreground == nil {
		return nil, probe.ErrNoWindow
	}
	return s.foreground, nil
}

func (s fakeShell) Focused() (probe.Window, error) {
	if s.focused == nil {
		return nil, probe.ErrNoWindow
	}
	return s.focused, nil
}

func fixture(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	file = filepath.Join(dir, "report.pdf")
	assert.NilError(t, os.WriteFile(file, []byte("x"), 0644))
	return dir, file
}

func TestProbe_Steps(t *testing.T) {
	dir, file := fixture(t)

	tests := []struct {
		name   string
		window fakeWindow
		kind   model.Kind
		want   string
	}{
		{
			name:   "file from selection",
			window: fakeWindow{process: "explorer.exe", selected: file},
			kind:   model.KindFile,
			want:   file,
		},
		{
			name:   "folder from current folder",
			window: fakeWindow{process: "nautilus", folder: dir},
			kind:   model.KindFolder,
			want:   dir,
		},
		{
			name:   "folder falls back to location url",
			window: fakeWindow{process: "nemo", url: fileurl.FromPath(dir)},
			kind:   model.KindFolder,
			want:   dir,
		},
		{
			name:   "folder falls back to absolute location name",
			window: fakeWindow{process: "thunar", url: "about:blank", name: dir},
			kind:   model.KindFolder,
			want:   dir,
		},
		{
			name:   "path is cleaned",
			window: fakeWindow{process: "dolphin", folder: dir + string(filepath.Separator) + "."},
			kind:   model.KindFolder,
			want:   dir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probe.Probe(fakeShell{foreground: tt.window}, tt.kind)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestProbe_NoPath(t *testing.T) {
	dir, file := fixture(t)

	tests := []struct {
		name   string
		window fakeWindow
		kind   model.Kind
	}{
		{
			name:   "not a file manager",
			window: fakeWindow{process: "notepad.exe", selected: file},
			kind:   model.KindFile,
		},
		{
			name:   "file kind rejects a directory selection",
			window: fakeWindow{process: "explorer", selected: dir},
			kind:   model.KindFile,
		},
		{
			name:   "file kind never uses location name",
			window: fakeWindow{process: "explorer", name: file},
			kind:   model.KindFile,
		},
		{
			name:   "relative location name",
			window: fakeWindow{process: "explorer", name: "Documents"},
			kind:   model.KindFolder,
		},
		{
			name:   "missing path",
			window: fakeWindow{process: "explorer", folder: filepath.Join(dir, "gone")},
			kind:   model.KindFolder,
		},
		{
			name:   "every query rejected",
			window: fakeWindow{process: "explorer"},
			kind:   model.KindFolder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := probe.Probe(fakeShell{foreground: tt.window}, tt.kind)
			assert.ErrorIs(t, err, probe.ErrNoPath)
		})
	}
}

func TestProbe_FallsBackToFocusedWindow(t *testing.T) {
	dir, _ := fixture(t)
	shell := fakeShell{
		foreground: fakeWindow{process: "code"},
		focused:    fakeWindow{process: "caja", folder: dir},
	}

	got, err := probe.Probe(shell, model.KindFolder)
	assert.NilError(t, err)
	assert.Equal(t, got, dir)
}

func TestProbe_NilShell(t *testing.T) {
	_, err := probe.Probe(nil, model.KindFile)
	assert.ErrorIs(t, err, probe.ErrNoPath)
}

func TestFromWindow_ReportsEachStep(t *testing.T) {
	_, err := probe.FromWindow(fakeWindow{process: "explorer", name: "Documents"}, model.KindFolder)
	assert.ErrorIs(t, err, errRejected)
	assert.ErrorIs(t, err, probe.ErrNotAbsolute)

	_, err = probe.FromWindow(fakeWindow{process: "word"}, model.KindFolder)
	assert.ErrorIs(t, err, probe.ErrNotFileManager)
}

func TestScriptShell(t *testing.T) {
	dir, file := fixture(t)
	env := map[string]string{
		"NEMO_SCRIPT_SELECTED_FILE_PATHS": file + "\n",
		"NEMO_SCRIPT_CURRENT_URI":         fileurl.FromPath(dir),
	}
	shell := &probe.ScriptShell{
		Getenv: func(k string) string { return env[k] },
		Getwd:  func() (string, error) { return "/nowhere", nil },
	}

	got, err := probe.Probe(shell, model.KindFile)
	assert.NilError(t, err)
	assert.Equal(t, got, file)

	got, err = probe.Probe(shell, model.KindFolder)
	assert.NilError(t, err)
	assert.Equal(t, got, dir)
}

func TestScriptShell_NoHost(t *testing.T) {
	shell := &probe.ScriptShell{Getenv: func(string) string { return "" }}
	_, err := shell.Foreground()
	assert.ErrorIs(t, err, probe.ErrNoWindow)
}

func TestStaticShell(t *testing.T) {
	dir, file := fixture(t)

	shell := probe.StaticShell{Window: probe.StaticWindow{Selected: file, Location: dir}}
	got, err := probe.Probe(shell, model.KindFile)
	assert.NilError(t, err)
	assert.Equal(t, got, file)

	shell = probe.StaticShell{Window: probe.StaticWindow{Location: fileurl.FromPath(dir)}}
	got, err = probe.Probe(shell, model.KindFolder)
	assert.NilError(t, err)
	assert.Equal(t, got, dir)
}

func TestIsFileManager(t *testing.T) {
	assert.Check(t, probe.IsFileManager(`C:\Windows\explorer.exe`))
	assert.Check(t, probe.IsFileManager("Nautilus"))
	assert.Check(t, !probe.IsFileManager("firefox"))
}
