// Package session holds one opening of a bookmark manager: the store loaded
// fresh from disk, the path found in the file manager, and the mutations
// that persist after every change.
package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/af/internal/launch"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/probe"
	"github.com/nikbrunner/af/internal/storage"
)

var (
	ErrNoCandidate   = errors.New("nothing selected in the file manager")
	ErrNoElevation   = errors.New("running elevated is not supported")
	ErrNotLaunchable = errors.New("no launcher configured")
)

// Params holds the collaborators of a Session.
type Params struct {
	Kind     model.Kind
	Storage  storage.Storage
	Shell    probe.Shell
	Launcher launch.Launcher
	Logger   zerolog.Logger
}

// Session is a manager opened for one dialog. It is discarded on close.
type Session struct {
	id        string
	kind      model.Kind
	store     *model.Store
	storage   storage.Storage
	launcher  launch.Launcher
	candidate string
	logger    zerolog.Logger
}

// Open loads the store and probes the file manager. A store that cannot be
// read is replaced by an empty one.
func Open(params Params) *Session {
	id := uuid.New().String()
	logger := params.Logger.With().
		Str("session", id).
		Str("kind", params.Kind.String()).
		Logger()

	s := &Session{
		id:       id,
		kind:     params.Kind,
		storage:  params.Storage,
		launcher: params.Launcher,
		logger:   logger,
	}

	if params.Storage != nil {
		store, err := params.Storage.Load()
		if err != nil {
			logger.Debug().Err(err).Msg("failed to load store, starting empty")
		} else {
			s.store = store
		}
	}
	if s.store == nil || s.store.Kind != params.Kind {
		s.store = model.NewStore(params.Kind)
	}

	if path, err := probe.Probe(params.Shell, params.Kind); err == nil {
		s.candidate = path
		logger.Debug().Str("path", path).Msg("file manager candidate")
	}

	logger.Debug().Int("bookmarks", s.store.Len()).Msg("session opened")
	return s
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string { return s.id }

// Kind returns the bookmark kind this session manages.
func (s *Session) Kind() model.Kind { return s.kind }

// Store returns the live store. Mutate it only through the session.
func (s *Session) Store() *model.Store { return s.store }

// Logger returns the session-scoped logger.
func (s *Session) Logger() zerolog.Logger { return s.logger }

// Candidate returns the path probed from the file manager.
func (s *Session) Candidate() (string, bool) {
	return s.candidate, s.candidate != ""
}

// SuggestedName is the base name of the candidate.
func (s *Session) SuggestedName() string {
	if s.candidate == "" {
		return ""
	}
	return filepath.Base(s.candidate)
}

// save persists the store. Failures are logged and otherwise ignored.
func (s *Session) save() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.store); err != nil {
		s.logger.Error().Err(err).Msg("failed to save store")
	}
}

// Add saves a bookmark. Folder bookmarks join the auto-open list when
// auto-load is on.
func (s *Session) Add(name, path string) error {
	if err := s.store.Add(name, path); err != nil {
		return err
	}
	s.store.RememberFolder(path)
	s.save()
	s.logger.Info().Str("name", name).Str("path", path).Msg("bookmark added")
	return nil
}

// AddCandidate bookmarks the probed path under name.
func (s *Session) AddCandidate(name string) error {
	if s.candidate == "" {
		return ErrNoCandidate
	}
	return s.Add(name, s.candidate)
}

// Rename renames a bookmark, keeping its position and pin.
func (s *Session) Rename(oldName, newName string) error {
	if err := s.store.Rename(oldName, newName); err != nil {
		return err
	}
	s.save()
	return nil
}

// Remove deletes a bookmark and drops its path from the auto-open list.
func (s *Session) Remove(name string) error {
	if err := s.store.Remove(name); err != nil {
		return err
	}
	s.save()
	s.logger.Info().Str("name", name).Msg("bookmark removed")
	return nil
}

// TogglePin pins or unpins name and reports whether it is now pinned.
func (s *Session) TogglePin(name string) (bool, error) {
	pinned, err := s.store.TogglePin(name)
	if err != nil {
		return false, err
	}
	s.save()
	return pinned, nil
}

// Reorder moves name one step; nothing is saved when it did not move.
func (s *Session) Reorder(name string, direction int) (bool, error) {
	moved, err := s.store.Reorder(name, direction)
	if err != nil || !moved {
		return moved, err
	}
	s.save()
	return true, nil
}

// AddRecent moves path to the front of the recent list.
func (s *Session) AddRecent(path string) error {
	if err := s.store.AddRecent(path); err != nil {
		return err
	}
	s.save()
	return nil
}

// RemoveRecent drops the recent entry at index.
func (s *Session) RemoveRecent(index int) error {
	if err := s.store.RemoveRecent(index); err != nil {
		return err
	}
	s.save()
	return nil
}

// ClearRecent empties the recent list.
func (s *Session) ClearRecent() {
	s.store.ClearRecent()
	s.save()
}

// SetSortMode stores the display sort mode.
func (s *Session) SetSortMode(mode model.SortMode) {
	s.store.SortMode = mode
	s.save()
}

// CycleSort advances to the next sort mode and returns it.
func (s *Session) CycleSort() model.SortMode {
	s.SetSortMode(s.store.SortMode.Next())
	return s.store.SortMode
}

// SetShowPath shows or hides the path column.
func (s *Session) SetShowPath(show bool) {
	s.store.ShowPath = show
	s.save()
}

// SetAutoLoad turns reopening folders after a restart on or off.
func (s *Session) SetAutoLoad(on bool) {
	s.store.SetAutoLoad(on)
	s.save()
}

// ForgetFolder removes the auto-open entry at index.
func (s *Session) ForgetFolder(index int) error {
	if err := s.store.ForgetFolder(index); err != nil {
		return err
	}
	s.save()
	return nil
}

// OpenEntry launches path and records it as recent. Opened folders join the
// auto-open list when auto-load is on.
func (s *Session) OpenEntry(path string) error {
	if s.launcher == nil {
		return ErrNotLaunchable
	}
	if err := s.launcher.Open(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.recordOpen(path)
	return nil
}

// RunElevated starts an executable bookmark with administrator rights.
func (s *Session) RunElevated(path string) error {
	elevator, ok := s.launcher.(launch.Elevator)
	if !ok {
		return ErrNoElevation
	}
	if !model.IsExecutable(path) {
		return fmt.Errorf("%s: %w", path, ErrNoElevation)
	}
	if err := elevator.RunElevated(path); err != nil {
		return fmt.Errorf("run elevated %s: %w", path, err)
	}
	s.recordOpen(path)
	return nil
}

func (s *Session) recordOpen(path string) {
	if err := s.store.AddRecent(path); err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("not added to recent")
	}
	s.store.RememberFolder(path)
	s.save()
	s.logger.Info().Str("path", path).Msg("opened")
}
