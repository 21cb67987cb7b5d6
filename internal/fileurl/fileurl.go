// Package fileurl converts between file:// URLs and filesystem paths.
package fileurl

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

var ErrNotFileURL = errors.New("not a file:// URL")

// ToPath decodes a file:// URL into a path. Drive-letter URLs
// (file:///C:/Users/x) become Windows paths (C:\Users\x) and URLs naming a
// host (file://server/share/x) become UNC paths (\\server\share\x).
// Everything else keeps forward slashes.
func ToPath(raw string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(raw), "file://") {
		return "", ErrNotFileURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	p := u.Path
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		share := strings.Trim(p, "/")
		if share == "" {
			return "", ErrNotFileURL
		}
		return `\\` + u.Host + `\` + strings.ReplaceAll(share, "/", `\`), nil
	}
	if isDrivePath(p) {
		return strings.ReplaceAll(p[1:], "/", `\`), nil
	}
	if p == "" {
		return "", ErrNotFileURL
	}
	return p, nil
}

// FromPath encodes an absolute path as a file:// URL.
func FromPath(path string) string {
	p := filepath.ToSlash(strings.ReplaceAll(path, `\`, "/"))

	// UNC: //server/share/...
	if strings.HasPrefix(p, "//") && len(p) > 2 && p[2] != '/' {
		host, rest, _ := strings.Cut(p[2:], "/")
		u := url.URL{Scheme: "file", Host: host, Path: "/" + rest}
		return u.String()
	}

	if len(p) >= 2 && p[1] == ':' {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// isDrivePath matches "/C:/..." as produced by url.Parse for drive URLs.
func isDrivePath(p string) bool {
	if len(p) < 3 || p[0] != '/' || p[2] != ':' {
		return false
	}
	c := p[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
