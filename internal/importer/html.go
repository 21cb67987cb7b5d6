// Package importer reads file and folder bookmarks from Netscape bookmark HTML.
package importer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/af/internal/fileurl"
	"github.com/nikbrunner/af/internal/model"
)

// Bookmark is a file:// link found in the document.
type Bookmark struct {
	Name   string
	Path   string
	Kind   model.Kind
	Folder string // slash-joined H3 names enclosing the link, "" at root
}

// Result holds everything parsed from one document.
type Result struct {
	Files   []Bookmark
	Folders []Bookmark
	Skipped int // links that are not file URLs
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns its file://
// links split by kind. Links inside an "Absolute Files" or "Absolute Folders"
// heading take that kind; others are classified by a trailing slash or by
// what exists on disk, defaulting to file.
func ParseHTMLBookmarks(r io.Reader) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var folderStack []string // enclosing H3 names
	var pendingFolder string // H3 waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = getTextContent(n)
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}
				path, err := fileurl.ToPath(href)
				if err != nil {
					res.Skipped++
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = filepath.Base(path)
				}

				b := Bookmark{
					Name:   name,
					Path:   path,
					Kind:   classify(folderStack, href, path),
					Folder: strings.Join(folderStack, "/"),
				}
				if b.Kind == model.KindFolder {
					res.Folders = append(res.Folders, b)
				} else {
					res.Files = append(res.Files, b)
				}
				return

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return res, nil
}

func classify(folderStack []string, href, path string) model.Kind {
	for _, name := range folderStack {
		switch name {
		case model.KindFolder.Title():
			return model.KindFolder
		case model.KindFile.Title():
			return model.KindFile
		}
	}
	if strings.HasSuffix(href, "/") {
		return model.KindFolder
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return model.KindFolder
	}
	return model.KindFile
}

// Merge adds bookmarks to store, skipping names that are already taken.
// It returns how many were added and how many were skipped.
func Merge(store *model.Store, bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		path := strings.TrimRight(b.Path, `/\`)
		if path == "" {
			path = b.Path
		}
		err := store.Add(b.Name, path)
		switch {
		case err == nil:
			added++
		case errors.Is(err, model.ErrNameExists), errors.Is(err, model.ErrEmptyName):
			skipped++
		}
	}
	return added, skipped
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
