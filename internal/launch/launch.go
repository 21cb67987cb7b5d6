// Package launch hands paths to the operating system's default handler.
package launch

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrEmptyPath is returned when asked to launch nothing.
var ErrEmptyPath = errors.New("empty path")

// Launcher opens a file or folder with its default application.
type Launcher interface {
	Open(path string) error
}

// Elevator starts executables with administrator rights.
type Elevator interface {
	RunElevated(path string) error
}

// System launches through the desktop environment.
type System struct{}

// Open opens path with its default handler without waiting for it to exit.
func (System) Open(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	return open(path)
}

// RunElevated starts an executable with administrator rights.
func (System) RunElevated(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	return runElevated(path)
}

// start runs name detached and reaps it in the background.
func start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
