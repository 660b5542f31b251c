// Package scan walks the local tree and reconciles it against the
// previous snapshot with a mark-and-sweep pass: every known path starts
// tagged deleted and is reclassified the first time a worker observes it.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

// Scanner traverses every filesystem entry reachable from Root that the
// ignore matcher does not exclude, and classifies each one against the
// previous snapshot.
type Scanner struct {
	Root   string
	Jobs   int     // worker count; <= 0 means runtime.NumCPU()
	Force  bool    // classify every observed tracked path as updated
	Ignore Matcher // nil means nothing is ignored
}

// SkippedEntry records a path the scan could not read. Skipped entries
// neither clear their deleted seed nor insert a new record.
type SkippedEntry struct {
	Path string
	Err  error
}

// Result carries the reconciled table plus scan bookkeeping.
type Result struct {
	Table   *Table
	Visited int
	Skipped []SkippedEntry
	Jobs    int
	Elapsed time.Duration
}

type workItem struct {
	rel   string // slash-separated, relative to root
	abs   string
	isDir bool
}

// Scan runs the traversal and returns the reconciled working set. Only
// base-directory inaccessibility is fatal; per-entry read failures are
// recorded in Result.Skipped and the walk continues.
func (s *Scanner) Scan(prev snapshot.Snapshot) (*Result, error) {
	jobs := s.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	matcher := s.Ignore
	if matcher == nil {
		matcher = nopMatcher{}
	}

	table := NewTable(prev)
	res := &Result{Table: table, Jobs: jobs}
	start := time.Now()

	items := make(chan workItem)
	var mu sync.Mutex // guards res.Visited and res.Skipped
	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				state := snapshot.Directory()
				if !item.isDir {
					hash, err := HashFile(item.abs)
					if err != nil {
						mu.Lock()
						res.Skipped = append(res.Skipped, SkippedEntry{Path: item.rel, Err: err})
						mu.Unlock()
						continue
					}
					state = snapshot.FileOf(hash)
				}
				table.Upsert(item.rel, state, s.Force)
				mu.Lock()
				res.Visited++
				mu.Unlock()
			}
		}()
	}

	walkErr := walk(s.Root, matcher, func(rel, abs string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectory: record and move on.
			mu.Lock()
			res.Skipped = append(res.Skipped, SkippedEntry{Path: rel, Err: err})
			mu.Unlock()
			return nil
		}
		items <- workItem{rel: rel, abs: abs, isDir: d.IsDir()}
		return nil
	})
	close(items)
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// walk traverses root, applying the matcher and hard-skipping the
// tracking directory. fn receives every entry to visit; entries whose
// directory could not be read arrive with a non-nil err. Each path is
// delivered exactly once.
func walk(root string, matcher Matcher, fn func(rel, abs string, d fs.DirEntry, err error) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			if rel == "." {
				return fmt.Errorf("reading base directory %s: %w", root, err)
			}
			return fn(rel, path, d, err)
		}
		if rel == "." {
			return nil
		}
		if rel == snapshot.TrackingDir {
			return fs.SkipDir
		}
		if matcher.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		return fn(rel, path, d, nil)
	})
}

// List returns every path the scanner would visit under root, in walk
// order. Used by the files command.
func List(root string, matcher Matcher) ([]string, error) {
	if matcher == nil {
		matcher = nopMatcher{}
	}
	var paths []string
	err := walk(root, matcher, func(rel, abs string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
