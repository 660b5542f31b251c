package remote

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tkoeppen/ftpsync/internal/plan"
)

// ItemFailure records a plan item the applier could not complete.
type ItemFailure struct {
	Verb string
	Path string
	Err  error
}

func (f ItemFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Verb, f.Path, f.Err)
}

// ApplyReport summarizes one apply pass. Failures are per-item and never
// abort the plan; a non-empty failure set is for the caller to surface.
type ApplyReport struct {
	Succeeded int
	Failures  []ItemFailure
}

// Applier executes a plan sequentially against a single remote session.
// It owns the only piece of transient state: the current remote working
// directory, tracked to avoid redundant navigation.
type Applier struct {
	Store     RemoteFS
	BasePath  string // remote directory the deploy roots at
	LocalRoot string // local base directory, source of uploaded bytes

	cwd string // "" when unknown
}

// Apply runs every plan item in order. Per-item failures are recorded
// and the applier moves on; there are no retries.
func (a *Applier) Apply(p *plan.Plan) *ApplyReport {
	rep := &ApplyReport{}
	a.cwd = ""

	for _, upd := range p.Updates {
		verb, err := a.applyOne(upd)
		if err != nil {
			rep.Failures = append(rep.Failures, ItemFailure{Verb: verb, Path: upd.Path, Err: err})
			continue
		}
		rep.Succeeded++
	}
	return rep
}

func (a *Applier) applyOne(upd plan.FileUpdate) (string, error) {
	// A directory creation is pure navigation: walking into the target
	// path creates every missing component along the way.
	if upd.Action == plan.CreateOrUpdate && upd.State.IsDir() {
		return "mkdir", a.moveTo(path.Join(a.BasePath, upd.Path))
	}

	dir := path.Join(a.BasePath, path.Dir(upd.Path))
	name := path.Base(upd.Path)

	if err := a.moveTo(dir); err != nil {
		return "cd", err
	}

	switch {
	case upd.Action == plan.Delete && upd.State.IsDir():
		return "rmdir", a.Store.RemoveDirectory(name)
	case upd.Action == plan.Delete:
		return "rm", a.Store.RemoveFile(name)
	default:
		return "put", a.putFile(upd.Path, name)
	}
}

func (a *Applier) putFile(relPath, name string) error {
	f, err := os.Open(filepath.Join(a.LocalRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return err
	}
	defer f.Close()
	return a.Store.PutFile(name, f)
}

// moveTo changes the remote working directory to dir, creating missing
// intermediate directories on the way. A no-op when the cursor already
// points at dir; the cursor is invalidated when navigation fails.
func (a *Applier) moveTo(dir string) error {
	dir = path.Clean(dir)
	if a.cwd == dir {
		return nil
	}
	a.cwd = ""

	if err := a.Store.ChangeDirectory("/"); err != nil {
		return err
	}
	for _, comp := range strings.Split(dir, "/") {
		switch comp {
		case "", ".":
		case "..":
			if err := a.Store.ChangeDirectory(".."); err != nil {
				return err
			}
		default:
			// Tolerated: the directory usually exists already.
			_ = a.Store.MakeDirectory(comp)
			if err := a.Store.ChangeDirectory(comp); err != nil {
				return err
			}
		}
	}

	a.cwd = dir
	return nil
}
