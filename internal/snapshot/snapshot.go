// Package snapshot persists the last-known state of every tracked path
// between deploy runs. The snapshot is what the remote store is believed
// to currently contain; the scanner diffs the live tree against it.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TrackingDir is the directory under the base path that holds ftpsync's
// run-to-run state. The scanner never descends into it.
const TrackingDir = ".ftpsync"

const fileName = "files.json"

// FileState is the recorded identity of one tracked path: a hex content
// hash for regular files, a bare presence marker for directories.
type FileState struct {
	hash  string
	isDir bool
}

// FileOf returns the state of a regular file with the given content hash.
func FileOf(hash string) FileState { return FileState{hash: hash} }

// Directory returns the presence-marker state of a directory.
func Directory() FileState { return FileState{isDir: true} }

// IsDir reports whether the state marks a directory.
func (s FileState) IsDir() bool { return s.isDir }

// Hash returns the content hash, or "" for directories.
func (s FileState) Hash() string { return s.hash }

// Equal reports whether two states describe identical content. A file and
// a directory are never equal; two files are equal iff their hashes match.
func (s FileState) Equal(o FileState) bool { return s == o }

func (s FileState) String() string {
	if s.isDir {
		return "directory"
	}
	return "file(" + s.hash + ")"
}

// MarshalJSON encodes the state as either {"File":"<hex>"} or "Directory".
func (s FileState) MarshalJSON() ([]byte, error) {
	if s.isDir {
		return json.Marshal("Directory")
	}
	return json.Marshal(map[string]string{"File": s.hash})
}

// UnmarshalJSON decodes the wire forms produced by MarshalJSON.
func (s *FileState) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Directory" {
			return fmt.Errorf("unknown file state %q", tag)
		}
		*s = Directory()
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parsing file state: %w", err)
	}
	hash, ok := obj["File"]
	if !ok {
		return fmt.Errorf("file state missing 'File' key")
	}
	*s = FileOf(hash)
	return nil
}

// Snapshot maps slash-separated relative paths to their last-known state.
// A path appears at most once.
type Snapshot map[string]FileState

// Path returns the location of the snapshot file under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, TrackingDir, fileName)
}

// Load reads the snapshot stored under basePath. If no snapshot file
// exists yet, an empty one is written and returned; an existing file is
// never overwritten by Load.
func Load(basePath string) (Snapshot, error) {
	path := Path(basePath)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		snap := Snapshot{}
		if err := Save(basePath, snap); err != nil {
			return nil, err
		}
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// Save writes the snapshot wholesale, atomically via a temp file and
// rename. The tracking directory is created if missing.
func Save(basePath string, snap Snapshot) error {
	path := Path(basePath)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating tracking directory %s: %w", filepath.Dir(path), err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp snapshot to %s: %w", path, err)
	}

	return nil
}
