// Package culler finds bookmarks whose paths no longer exist.
package culler

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/af/internal/model"
)

// Status represents the health of a bookmarked path.
type Status int

const (
	Present     Status = iota // exists as the bookmark's kind
	Missing                   // does not exist
	WrongKind                 // exists, but as a file where a folder is expected or vice versa
	Unreachable               // permission denied, offline share, stat timed out
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Missing:
		return "missing"
	case WrongKind:
		return "wrong kind"
	}
	return "unreachable"
}

// Result holds the check result for a single bookmark.
type Result struct {
	Name   string
	Path   string
	Status Status
	Error  string // reason for unreachable paths
}

// ProgressFunc is called after each path is checked.
// completed is the number of paths checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// statFunc is replaced in tests.
var statFunc = os.Stat

// CheckStore checks every bookmark of store concurrently. Results follow the
// store's custom order.
func CheckStore(store *model.Store, concurrency int, timeout time.Duration, onProgress ProgressFunc) []Result {
	names := store.Order
	if len(names) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(names))
	jobs := make(chan int, len(names))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := names[idx]
				results[idx] = checkPath(store.Kind, name, store.Entries[name], timeout)

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(names))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// Dead returns the names of results that are missing or of the wrong kind.
// Unreachable paths are kept: they may come back.
func Dead(results []Result) []string {
	var names []string
	for _, r := range results {
		if r.Status == Missing || r.Status == WrongKind {
			names = append(names, r.Name)
		}
	}
	return names
}

// checkPath stats a single path. A stat that outlives timeout is reported as
// unreachable; its goroutine is left to finish on its own.
func checkPath(kind model.Kind, name, path string, timeout time.Duration) Result {
	result := Result{Name: name, Path: path}

	type statResult struct {
		info fs.FileInfo
		err  error
	}
	stat := statFunc
	done := make(chan statResult, 1)
	go func() {
		info, err := stat(path)
		done <- statResult{info, err}
	}()

	var sr statResult
	if timeout > 0 {
		select {
		case sr = <-done:
		case <-time.After(timeout):
			result.Status = Unreachable
			result.Error = "Timeout"
			return result
		}
	} else {
		sr = <-done
	}

	switch {
	case errors.Is(sr.err, fs.ErrNotExist):
		result.Status = Missing
	case sr.err != nil:
		result.Status = Unreachable
		result.Error = normalizeError(sr.err.Error())
	case kind == model.KindFolder && !sr.info.IsDir(),
		kind == model.KindFile && !sr.info.Mode().IsRegular():
		result.Status = WrongKind
	default:
		result.Status = Present
	}
	return result
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "permission denied"),
		strings.Contains(lower, "access is denied"):
		return "Permission denied"
	case strings.Contains(lower, "network"),
		strings.Contains(lower, "host is down"):
		return "Network unreachable"
	case strings.Contains(lower, "not a directory"):
		return "Parent is not a directory"
	case strings.Contains(lower, "too many levels of symbolic links"):
		return "Symlink loop"
	default:
		return errStr
	}
}
