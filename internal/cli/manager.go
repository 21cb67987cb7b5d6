package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/session"
	"github.com/nikbrunner/af/internal/tui"
)

func newManagerCmd(kind model.Kind) *cobra.Command {
	use := "files"
	if kind == model.KindFolder {
		use = "folders"
	}
	return &cobra.Command{
		Use:   use,
		Short: "Open the " + kind.Title() + " manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(kind)
		},
	}
}

// runManager shows the dialog for kind. The gesture chord reopens the
// dialog on a fresh session of either kind.
func runManager(kind model.Kind) error {
	var releases []func()
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	open := func(k model.Kind) *session.Session {
		s, release, err := openSession(k)
		if err != nil {
			logger.Error().Err(err).Str("kind", k.String()).Msg("failed to open manager")
			return nil
		}
		releases = append(releases, release)
		return s
	}

	s := open(kind)
	if s == nil {
		return fmt.Errorf("open %s manager", kind)
	}

	app := tui.NewApp(tui.AppParams{
		Session:   s,
		Open:      open,
		Gesture:   cfg.Gesture,
		DoubleTap: cfg.DoubleTapWindow(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running dialog: %w", err)
	}

	if final, ok := finalModel.(tui.App); ok && final.Opened() != "" {
		logger.Debug().Str("path", final.Opened()).Msg("dialog closed after open")
	}
	return nil
}
