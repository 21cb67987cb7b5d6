package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/af/internal/exporter"
	"github.com/nikbrunner/af/internal/importer"
	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/storage"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import file:// bookmarks from a browser export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			parsed, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			added := map[model.Kind]int{}
			skipped := parsed.Skipped
			for kind, bookmarks := range map[model.Kind][]importer.Bookmark{
				model.KindFile:   parsed.Files,
				model.KindFolder: parsed.Folders,
			} {
				if len(bookmarks) == 0 {
					continue
				}
				n, dup, err := mergeInto(kind, bookmarks)
				if err != nil {
					return err
				}
				added[kind] = n
				skipped += dup
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d files, %d folders",
				added[model.KindFile], added[model.KindFolder])
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// mergeInto adds bookmarks to the store of kind and saves it.
func mergeInto(kind model.Kind, bookmarks []importer.Bookmark) (added, skipped int, err error) {
	s, release, err := openStorage(kind)
	if err != nil {
		return 0, 0, err
	}
	defer release()

	store, err := s.Load()
	if err != nil {
		return 0, 0, err
	}
	added, skipped = importer.Merge(store, bookmarks)
	if added == 0 {
		return added, skipped, nil
	}
	if err := s.Save(store); err != nil {
		return 0, 0, fmt.Errorf("saving %s bookmarks: %w", kind, err)
	}
	logger.Info().Str("kind", kind.String()).Int("added", added).Int("skipped", skipped).Msg("imported bookmarks")
	return added, skipped, nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export all bookmarks as Netscape bookmark HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				p, err := exporter.DefaultExportPath()
				if err != nil {
					return err
				}
				outputPath = p
			}

			files, err := loadStore(model.KindFile)
			if err != nil {
				return err
			}
			folders, err := loadStore(model.KindFolder)
			if err != nil {
				return err
			}

			if err := exporter.WriteFile(outputPath, files, folders); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files, %d folders to %s\n",
				files.Len(), folders.Len(), outputPath)
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move both JSON stores into an SQLite database",
		Long: `Copies AbsoluteFiles.json and AbsoluteFolders.json into af.db.
Once af.db exists every command reads and writes the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := filepath.Join(dataDir, storage.SQLiteFileName)
			files := storage.NewJSONStorage(filepath.Join(dataDir, storage.StoreFileName(model.KindFile)), model.KindFile)
			folders := storage.NewJSONStorage(filepath.Join(dataDir, storage.StoreFileName(model.KindFolder)), model.KindFolder)
			if err := storage.MigrateJSONFile(dbPath, files, folders); err != nil {
				return fmt.Errorf("migrating to %s: %w", dbPath, err)
			}
			logger.Info().Str("path", dbPath).Msg("migrated JSON stores")
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated to %s\n", dbPath)
			return nil
		},
	}
}
