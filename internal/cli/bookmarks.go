package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/picker"
	"github.com/nikbrunner/af/internal/search"
)

func newOpenCmd() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "open <query...>",
		Short: "Fuzzy-find a bookmark and open it",
		Args:  cobra.MinimumNArgs(1),
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

			query := strings.Join(args, " ")
			results := search.FuzzySearchBookmarks(s.Store(), query)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No bookmarks found for '%s'\n", query)
				return nil
			}

			var entry search.Entry
			if len(results) == 1 {
				// Single result - select it directly
				entry = results[0].Entry
			} else {
				p := picker.New(kind.Title(), results, query)
				finalModel, err := tea.NewProgram(p).Run()
				if err != nil {
					return fmt.Errorf("running picker: %w", err)
				}
				chosen, ok := finalModel.(picker.Picker).Selected()
				if !ok {
					return nil
				}
				entry = chosen
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s\n", entry.Name)
			return s.OpenEntry(entry.Path)
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	return cmd
}

func newAddCmd() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "add <name> [path]",
		Short: "Bookmark a path, or the file manager selection",
		Args:  cobra.RangeArgs(1, 2),
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

			name := args[0]
			if len(args) == 1 {
				if err := s.AddCandidate(name); err != nil {
					return err
				}
				path, _ := s.Candidate()
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s -> %s\n", name, path)
				return nil
			}

			path, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			if !kind.Exists(path) {
				return fmt.Errorf("%s: %w", path, model.ErrNotExist)
			}
			if err := s.Add(name, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s -> %s\n", name, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	return cmd
}

func newRmCmd() *cobra.Command {
	var (
		kindName string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
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

			name := args[0]
			if _, ok := s.Store().Path(name); !ok {
				return fmt.Errorf("%s: %w", name, model.ErrNotFound)
			}
			ok, err := confirm(fmt.Sprintf("Remove bookmark %q?", name), yes)
			if err != nil || !ok {
				return err
			}
			if err := s.Remove(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newRenameCmd() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a bookmark",
		Args:  cobra.ExactArgs(2),
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

			if err := s.Rename(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], strings.TrimSpace(args[1]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	return cmd
}

func newPinCmd() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "pin <name>",
		Short: "Pin or unpin a bookmark",
		Args:  cobra.ExactArgs(1),
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

			pinned, err := s.TogglePin(args[0])
			if err != nil {
				return err
			}
			if pinned {
				fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	return cmd
}

func newLsCmd() *cobra.Command {
	var (
		kindName   string
		filterName string
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List bookmarks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindName)
			if err != nil {
				return err
			}
			filter, ok := model.ParseTypeFilter(filterName)
			if !ok {
				return fmt.Errorf("unknown filter %q", filterName)
			}
			store, err := loadStore(kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for name := range store.VisibleOrder(filter) {
				marker := " "
				if store.IsPinned(name) {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, name, store.Entries[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "File type: all, audio, video, document, code, exe")
	return cmd
}

func newRecentCmd() *cobra.Command {
	var (
		kindName  string
		clearList bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List or clear recently opened paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindName)
			if err != nil {
				return err
			}

			if !clearList {
				store, err := loadStore(kind)
				if err != nil {
					return err
				}
				for _, p := range store.Recent {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			s, release, err := openSession(kind)
			if err != nil {
				return err
			}
			defer release()

			ok, err := confirm("Clear the recent list?", yes)
			if err != nil || !ok {
				return err
			}
			s.ClearRecent()
			fmt.Fprintln(cmd.OutOrStdout(), "Recent list cleared")
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "files", "Bookmark kind: files or folders")
	cmd.Flags().BoolVar(&clearList, "clear", false, "Clear the recent list")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
