package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/probe"
	"github.com/nikbrunner/af/internal/session"
	"github.com/nikbrunner/af/internal/storage"
)

// openStorage opens the backend for kind. The returned func releases it.
func openStorage(kind model.Kind) (storage.Storage, func(), error) {
	s, err := storage.OpenStorageIn(dataDir, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", kind, err)
	}
	release := func() {}
	if c, ok := s.(io.Closer); ok {
		release = func() { _ = c.Close() }
	}
	return s, release, nil
}

// loadStore reads the store for kind without opening a session.
func loadStore(kind model.Kind) (*model.Store, error) {
	s, release, err := openStorage(kind)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.Load()
}

// fileManager returns the shell to probe. Explicit flags win over the
// environment of file-manager scripts.
func fileManager() probe.Shell {
	if selected != "" || location != "" {
		return probe.StaticShell{Window: probe.StaticWindow{Selected: selected, Location: location}}
	}
	return probe.NewScriptShell()
}

// openSession opens a manager session for kind.
func openSession(kind model.Kind) (*session.Session, func(), error) {
	s, release, err := openStorage(kind)
	if err != nil {
		return nil, nil, err
	}
	sess := session.Open(session.Params{
		Kind:     kind,
		Storage:  s,
		Shell:    fileManager(),
		Launcher: launcher,
		Logger:   logger,
	})
	return sess, release, nil
}

func parseKind(s string) (model.Kind, error) {
	kind, ok := model.ParseKind(s)
	if !ok {
		return model.KindFile, fmt.Errorf("unknown kind %q (want files or folders)", s)
	}
	return kind, nil
}

// confirm asks a yes/no question unless yes is already set.
func confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
