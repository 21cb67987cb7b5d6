package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/af/internal/culler"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/restart"
)

// cullTimeout bounds each stat, so a dead network share cannot hang the check.
const cullTimeout = 5 * time.Second

func newCullCmd() *cobra.Command {
	var (
		kindName string
		remove   bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "cull",
		Short: "Find bookmarks whose path is gone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindName)
			if err != nil {
				return err
			}
			s, release, err := openSession(kind)
			if err != nil {
				return err
			}
			defer release()

			results := culler.CheckStore(s.Store(), cfg.CullConcurrency, cullTimeout, nil)
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Status == culler.Present {
					continue
				}
				line := fmt.Sprintf("%-11s %s\t%s", r.Status, r.Name, r.Path)
				if r.Error != "" {
					line += " (" + r.Error + ")"
				}
				fmt.Fprintln(out, line)
			}

			dead := culler.Dead(results)
			fmt.Fprintf(out, "%d of %d bookmarks are gone\n", len(dead), len(results))
			if !remove || len(dead) == 0 {
				return nil
			}

			ok, err := confirm(fmt.Sprintf("Remove %d bookmarks?", len(dead)), yes)
			if err != nil || !ok {
				return err
			}
			for _, name := range dead {
				if err := s.Remove(name); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Removed %d bookmarks\n", len(dead))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove missing bookmarks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newAutoOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autoopen",
		Short: "Reopen the remembered folders after a restart",
		Long: `Meant to run at login. Waits for the desktop to settle, compares the
system uptime with the value stored last time and, when the machine was
restarted, opens every remembered folder that still exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := openStorage(model.KindFolder)
			if err != nil {
				return err
			}
			defer release()

			store, err := s.Load()
			if err != nil {
				// An unreadable store has no folders to reopen.
				logger.Warn().Err(err).Msg("failed to load folder store, skipping auto-open")
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			reopened, err := restart.Startup(ctx, restart.StartupParams{
				Delay: cfg.StartupDelay(),
				Detector: restart.NewDetector(restart.DetectorParams{
					Save:   s.Save,
					Logger: logger,
				}),
				Opener: restart.NewAutoOpener(restart.AutoOpenerParams{
					Launcher:  launcher,
					BaseDelay: cfg.AutoOpenBaseDelay(),
					Stagger:   cfg.AutoOpenStagger(),
					Logger:    logger,
				}),
				Store: store,
			})
			if err != nil {
				return err
			}
			if reopened {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %d folders\n", len(store.AutoOpenFolders()))
			}
			return nil
		},
	}
}
