package scan

import (
	"sync"

	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

// FileMode classifies what happened to a tracked path during one scan.
type FileMode int

const (
	// ModeDeleted is the seed state: the path was known from the previous
	// snapshot but has not been observed this run. Entries still tagged
	// ModeDeleted when the scan completes are genuinely gone.
	ModeDeleted FileMode = iota
	ModeUntouched
	ModeCreated
	ModeUpdated
)

func (m FileMode) String() string {
	switch m {
	case ModeDeleted:
		return "deleted"
	case ModeUntouched:
		return "untouched"
	case ModeCreated:
		return "created"
	case ModeUpdated:
		return "updated"
	}
	return "unknown"
}

// WorkingEntry is the transient per-path record held during one run.
type WorkingEntry struct {
	State snapshot.FileState
	Mode  FileMode
}

// Table is the working set shared by the scan workers. Every previously
// tracked path is seeded ModeDeleted; each observed path is reclassified
// exactly once by whichever worker visits it.
type Table struct {
	mu      sync.Mutex
	entries map[string]WorkingEntry
}

// NewTable seeds a table from the previous snapshot.
func NewTable(prev snapshot.Snapshot) *Table {
	entries := make(map[string]WorkingEntry, len(prev))
	for path, state := range prev {
		entries[path] = WorkingEntry{State: state, Mode: ModeDeleted}
	}
	return &Table{entries: entries}
}

// Upsert records that path currently exists with state and returns the
// mode it was classified as. The lookup of the seeded entry and the
// insert happen under a single lock acquisition, so concurrent workers
// cannot interleave between the check and the write.
func (t *Table) Upsert(path string, state snapshot.FileState, force bool) FileMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	mode := ModeCreated
	if old, ok := t.entries[path]; ok {
		if old.State.Equal(state) && !force {
			mode = ModeUntouched
		} else {
			mode = ModeUpdated
		}
	}
	t.entries[path] = WorkingEntry{State: state, Mode: mode}
	return mode
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Entries returns the table's contents. Meant to be called after all
// workers have finished; the returned map is the table's own storage.
func (t *Table) Entries() map[string]WorkingEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries
}
