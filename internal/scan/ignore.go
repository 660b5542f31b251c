package scan

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the gitignore-style exclusion file read from the base
// directory.
const IgnoreFileName = ".ftpsyncignore"

// Matcher decides which relative paths the scanner skips. The scanner
// treats it as an opaque filter.
type Matcher interface {
	Match(relPath string, isDir bool) bool
}

// LoadMatcher compiles the ignore file under basePath. A missing ignore
// file yields a matcher that excludes nothing.
func LoadMatcher(basePath string) (Matcher, error) {
	path := filepath.Join(basePath, IgnoreFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nopMatcher{}, nil
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore file %s: %w", path, err)
	}
	return gitignoreMatcher{gi: gi}, nil
}

type nopMatcher struct{}

func (nopMatcher) Match(string, bool) bool { return false }

type gitignoreMatcher struct {
	gi *ignore.GitIgnore
}

func (m gitignoreMatcher) Match(relPath string, isDir bool) bool {
	// Directory patterns like ".cache/" only match paths with a trailing
	// separator.
	if isDir {
		relPath += "/"
	}
	return m.gi.MatchesPath(relPath)
}
