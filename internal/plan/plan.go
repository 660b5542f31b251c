// Package plan projects a reconciled working set into the ordered list
// of remote operations for one deploy.
package plan

import (
	"sort"

	"github.com/tkoeppen/ftpsync/internal/scan"
	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

// Action is the remote verb planned for a path.
type Action int

const (
	CreateOrUpdate Action = iota
	Delete
)

func (a Action) String() string {
	if a == Delete {
		return "delete"
	}
	return "create"
}

// FileUpdate is one planned remote operation.
type FileUpdate struct {
	Path   string
	State  snapshot.FileState
	Action Action
}

// Plan is the ordered operation sequence for one deploy.
type Plan struct {
	Updates []FileUpdate
}

// IsEmpty reports whether the plan contains no operations.
func (p *Plan) IsEmpty() bool { return len(p.Updates) == 0 }

// Len returns the number of planned operations.
func (p *Plan) Len() int { return len(p.Updates) }

// Build converts the final working set into a plan and the snapshot to
// persist after this run. Created and updated entries become
// CreateOrUpdate, still-deleted entries become Delete, untouched entries
// produce no operation but stay in the snapshot.
//
// Creations are ordered parents-before-children so remote directories
// exist before anything is placed inside them; deletions are ordered
// children-before-parents so directories are empty by the time they are
// removed.
func Build(entries map[string]scan.WorkingEntry) (*Plan, snapshot.Snapshot) {
	var creates, deletes []FileUpdate
	next := snapshot.Snapshot{}

	for path, entry := range entries {
		switch entry.Mode {
		case scan.ModeDeleted:
			deletes = append(deletes, FileUpdate{Path: path, State: entry.State, Action: Delete})
		case scan.ModeCreated, scan.ModeUpdated:
			creates = append(creates, FileUpdate{Path: path, State: entry.State, Action: CreateOrUpdate})
			next[path] = entry.State
		case scan.ModeUntouched:
			next[path] = entry.State
		}
	}

	// Lexicographic order puts a directory before every path under it;
	// the reverse puts children first.
	sort.Slice(creates, func(i, j int) bool { return creates[i].Path < creates[j].Path })
	sort.Slice(deletes, func(i, j int) bool { return deletes[i].Path > deletes[j].Path })

	return &Plan{Updates: append(creates, deletes...)}, next
}
