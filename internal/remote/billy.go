package remote

import (
	"fmt"
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
)

// BillyRemote adapts any billy.Filesystem to the RemoteFS capability,
// tracking a working directory the way a remote session would. Backed by
// osfs it deploys to a locally mounted target; backed by memfs it is the
// in-memory store the tests run against.
type BillyRemote struct {
	fs  billy.Filesystem
	cwd string
}

// NewBillyRemote returns a session rooted at the filesystem's root.
func NewBillyRemote(fs billy.Filesystem) *BillyRemote {
	return &BillyRemote{fs: fs, cwd: "/"}
}

func (r *BillyRemote) target(name string) string {
	return path.Join(r.cwd, name)
}

func (r *BillyRemote) ChangeDirectory(name string) error {
	var dir string
	switch name {
	case "/":
		dir = "/"
	case "..":
		dir = path.Dir(r.cwd)
	default:
		dir = r.target(name)
	}

	if dir != "/" {
		fi, err := r.fs.Stat(dir)
		if err != nil {
			return fmt.Errorf("changing directory to %s: %w", dir, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("changing directory to %s: not a directory", dir)
		}
	}
	r.cwd = dir
	return nil
}

func (r *BillyRemote) MakeDirectory(name string) error {
	return r.fs.MkdirAll(r.target(name), 0755)
}

func (r *BillyRemote) RemoveFile(name string) error {
	return r.fs.Remove(r.target(name))
}

func (r *BillyRemote) RemoveDirectory(name string) error {
	return r.fs.Remove(r.target(name))
}

func (r *BillyRemote) PutFile(name string, src io.Reader) error {
	f, err := r.fs.Create(r.target(name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
