package scan

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

func TestTableUpsertClassification(t *testing.T) {
	h1 := snapshot.FileOf("h1")
	h2 := snapshot.FileOf("h2")

	tests := []struct {
		name  string
		prev  snapshot.Snapshot
		state snapshot.FileState
		force bool
		want  FileMode
	}{
		{"new path", snapshot.Snapshot{}, h1, false, ModeCreated},
		{"unchanged", snapshot.Snapshot{"p": h1}, h1, false, ModeUntouched},
		{"changed hash", snapshot.Snapshot{"p": h1}, h2, false, ModeUpdated},
		{"unchanged but forced", snapshot.Snapshot{"p": h1}, h1, true, ModeUpdated},
		{"file replaced by directory", snapshot.Snapshot{"p": h1}, snapshot.Directory(), false, ModeUpdated},
		{"directory replaced by file", snapshot.Snapshot{"p": snapshot.Directory()}, h1, false, ModeUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.prev)
			got := table.Upsert("p", tt.state, tt.force)
			if got != tt.want {
				t.Errorf("Upsert = %v, want %v", got, tt.want)
			}
			if entry := table.Entries()["p"]; entry.Mode != tt.want || !entry.State.Equal(tt.state) {
				t.Errorf("entry = %+v", entry)
			}
		})
	}
}

func TestTableSeedsDeleted(t *testing.T) {
	table := NewTable(snapshot.Snapshot{
		"a.txt": snapshot.FileOf("h1"),
		"docs":  snapshot.Directory(),
	})

	for path, entry := range table.Entries() {
		if entry.Mode != ModeDeleted {
			t.Errorf("%s seeded as %v, want deleted", path, entry.Mode)
		}
	}
}

func TestTableConcurrentUpserts(t *testing.T) {
	prev := snapshot.Snapshot{}
	for i := 0; i < 512; i++ {
		prev[fmt.Sprintf("f%d", i)] = snapshot.FileOf("old")
	}
	table := NewTable(prev)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < 1024; i += 8 {
				table.Upsert(fmt.Sprintf("f%d", i), snapshot.FileOf("new"), false)
			}
		}(w)
	}
	wg.Wait()

	if table.Len() != 1024 {
		t.Fatalf("len = %d, want 1024", table.Len())
	}
	entries := table.Entries()
	if entries["f0"].Mode != ModeUpdated {
		t.Errorf("previously tracked path = %v, want updated", entries["f0"].Mode)
	}
	if entries["f900"].Mode != ModeCreated {
		t.Errorf("new path = %v, want created", entries["f900"].Mode)
	}
}
