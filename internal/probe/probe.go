// Package probe asks the focused file-manager window which file or folder
// the user is looking at.
package probe

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/af/internal/fileurl"
	"github.com/nikbrunner/af/internal/model"
)

// ErrNoPath is returned when no window yields a usable path.
var ErrNoPath = errors.New("no path found in file manager")

var (
	ErrNoWindow       = errors.New("no window available")
	ErrNotFileManager = errors.New("window is not a file manager")
	ErrUnsupported    = errors.New("window rejected the query")
	ErrNotAbsolute    = errors.New("location is not an absolute path")
	ErrWrongKind      = errors.New("path does not exist as the requested kind")
)

// Window is a top-level window that may belong to a file manager.
type Window interface {
	Process() string
	SelectedItem() (string, error)
	CurrentFolder() (string, error)
	LocationURL() (string, error)
	LocationName() (string, error)
}

// Shell gives access to the windows the probe should inspect.
type Shell interface {
	Foreground() (Window, error)
	Focused() (Window, error)
}

var fileManagers = map[string]bool{
	"explorer": true,
	"nautilus": true,
	"nemo":     true,
	"caja":     true,
	"thunar":   true,
	"dolphin":  true,
	"finder":   true,
}

// IsFileManager reports whether process names a known file manager.
// Directory prefixes and a trailing .exe are ignored.
func IsFileManager(process string) bool {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(process, `\`, "/")))
	name = strings.TrimSuffix(name, ".exe")
	return fileManagers[name]
}

// Probe returns the path shown by the foreground window, falling back to
// the focused window. Any failure is reported as ErrNoPath.
func Probe(shell Shell, kind model.Kind) (string, error) {
	if shell == nil {
		return "", ErrNoPath
	}
	for _, get := range []func() (Window, error){shell.Foreground, shell.Focused} {
		w, err := get()
		if err != nil || w == nil {
			continue
		}
		if path, err := FromWindow(w, kind); err == nil {
			return path, nil
		}
	}
	return "", ErrNoPath
}

// FromWindow runs the lookup steps against a single window and returns
// the first path that exists as kind. The error joins every step's failure.
func FromWindow(w Window, kind model.Kind) (string, error) {
	if !IsFileManager(w.Process()) {
		return "", fmt.Errorf("%s: %w", w.Process(), ErrNotFileManager)
	}

	var errs []error
	for _, step := range steps(kind) {
		raw, err := step(w)
		if err == nil {
			raw, err = accept(raw, kind)
		}
		if err == nil {
			return raw, nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

type step func(Window) (string, error)

func steps(kind model.Kind) []step {
	if kind == model.KindFolder {
		return []step{currentFolder, locationURL, locationName}
	}
	return []step{selectedItem, locationURL}
}

func selectedItem(w Window) (string, error) {
	p, err := w.SelectedItem()
	if err != nil {
		return "", fmt.Errorf("selected item: %w", err)
	}
	return p, nil
}

func currentFolder(w Window) (string, error) {
	p, err := w.CurrentFolder()
	if err != nil {
		return "", fmt.Errorf("current folder: %w", err)
	}
	return p, nil
}

func locationURL(w Window) (string, error) {
	raw, err := w.LocationURL()
	if err != nil {
		return "", fmt.Errorf("location url: %w", err)
	}
	p, err := fileurl.ToPath(raw)
	if err != nil {
		return "", fmt.Errorf("location url %q: %w", raw, err)
	}
	return p, nil
}

func locationName(w Window) (string, error) {
	name, err := w.LocationName()
	if err != nil {
		return "", fmt.Errorf("location name: %w", err)
	}
	if !filepath.IsAbs(name) {
		return "", fmt.Errorf("location name %q: %w", name, ErrNotAbsolute)
	}
	return name, nil
}

func accept(path string, kind model.Kind) (string, error) {
	if path == "" {
		return "", ErrUnsupported
	}
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%q: %w", path, ErrNotAbsolute)
	}
	if !kind.Exists(path) {
		return "", fmt.Errorf("%q: %w", path, ErrWrongKind)
	}
	return path, nil
}
