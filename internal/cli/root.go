// Package cli provides the command-line interface for af.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/af/internal/launch"
	"github.com/nikbrunner/af/internal/logging"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/storage"
)

var (
	// Global flags
	dataDir  string
	verbose  bool
	selected string
	location string

	// Set up before every command
	cfg       *storage.Config
	logger    = zerolog.Nop()
	logCloser io.Closer

	// launcher opens paths; tests replace it.
	launcher launch.Launcher = launch.System{}
)

// Version is overridden at build time with -ldflags "-X".
var Version = "v0.1.0-dev"

// NewRootCmd creates the root command. Without a subcommand it opens the
// folder manager.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "af",
		Short: "Absolute Files and Folders - bookmarks for your file manager",
		Long: `af ` + Version + `
Named bookmarks for files and folders, opened from the file manager.

  af                open the folder manager
  af files          open the file manager
  af open <query>   fuzzy-find a bookmark and open it

Data lives in ~/.config/af (override with --dir).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(model.KindFolder)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default ~/.config/af)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&selected, "selected", "", "Path selected in the file manager")
	rootCmd.PersistentFlags().StringVar(&location, "location", "", "Folder (or file:// URL) shown in the file manager")

	rootCmd.Version = Version

	rootCmd.AddCommand(
		newManagerCmd(model.KindFile),
		newManagerCmd(model.KindFolder),
		newOpenCmd(),
		newAddCmd(),
		newRmCmd(),
		newRenameCmd(),
		newPinCmd(),
		newLsCmd(),
		newRecentCmd(),
		newImportCmd(),
		newExportCmd(),
		newCullCmd(),
		newAutoOpenCmd(),
		newMigrateCmd(),
	)

	return rootCmd
}

// setup resolves the data directory, loads the config and opens the log.
func setup() error {
	if dataDir == "" {
		dir, err := storage.DefaultDir()
		if err != nil {
			return err
		}
		dataDir = dir
	}

	loaded, err := storage.LoadConfig(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return err
	}
	cfg = loaded

	if verbose {
		logger = logging.NewConsole(os.Stderr, "debug")
		return nil
	}

	// The dialog owns the terminal, so regular runs log to a file.
	fileLogger, closer, err := logging.OpenFile(filepath.Join(dataDir, "af.log"), cfg.LogLevel)
	if err != nil {
		logger = zerolog.Nop()
		return nil
	}
	logger = fileLogger
	logCloser = closer
	return nil
}

func teardown() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}
