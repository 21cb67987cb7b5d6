// Package exporter writes bookmarks as Netscape bookmark HTML.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/af/internal/fileurl"
	"github.com/nikbrunner/af/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/af-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("af-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the given stores, each under a heading named after its
// kind. Pinned bookmarks are listed first, as in the dialog.
func ExportHTML(stores ...*model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, store := range stores {
		if store != nil {
			writeStore(&b, store, 1)
		}
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeStore writes one kind as a folder of links.
func writeStore(b *strings.Builder, store *model.Store, indent int) {
	prefix := strings.Repeat("    ", indent)
	inner := strings.Repeat("    ", indent+1)

	fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(store.Kind.Title()))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)
	for name := range store.VisibleOrder(model.FilterAll) {
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\">%s</A>\n",
			inner,
			html.EscapeString(fileurl.FromPath(store.Entries[name])),
			html.EscapeString(name),
		)
	}
	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}

// WriteFile exports the stores to path, creating its directory.
func WriteFile(path string, stores ...*model.Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportHTML(stores...)), 0644)
}
