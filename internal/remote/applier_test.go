package remote

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoeppen/ftpsync/internal/plan"
	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

func writeLocal(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestApplierCreatesFilesAndDirectories(t *testing.T) {
	local := t.TempDir()
	writeLocal(t, local, "index.html", "<html/>")
	writeLocal(t, local, "assets/app.js", "js")

	fs := memfs.New()
	a := &Applier{Store: NewBillyRemote(fs), BasePath: "/www", LocalRoot: local}

	rep := a.Apply(&plan.Plan{Updates: []plan.FileUpdate{
		{Path: "assets", State: snapshot.Directory(), Action: plan.CreateOrUpdate},
		{Path: "assets/app.js", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
		{Path: "index.html", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
	}})

	require.Empty(t, rep.Failures)
	assert.Equal(t, 3, rep.Succeeded)

	data, err := util.ReadFile(fs, "/www/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))

	data, err = util.ReadFile(fs, "/www/assets/app.js")
	require.NoError(t, err)
	assert.Equal(t, "js", string(data))
}

func TestApplierDeletes(t *testing.T) {
	local := t.TempDir()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/www/old/gone.txt", []byte("x"), 0644))

	a := &Applier{Store: NewBillyRemote(fs), BasePath: "/www", LocalRoot: local}

	rep := a.Apply(&plan.Plan{Updates: []plan.FileUpdate{
		{Path: "old/gone.txt", State: snapshot.FileOf("h"), Action: plan.Delete},
		{Path: "old", State: snapshot.Directory(), Action: plan.Delete},
	}})

	require.Empty(t, rep.Failures)
	assert.Equal(t, 2, rep.Succeeded)

	_, err := fs.Stat("/www/old")
	assert.Error(t, err, "directory should be gone")
}

// failingStore wraps a RemoteFS and fails selected puts.
type failingStore struct {
	RemoteFS
	failName string
}

func (s *failingStore) PutFile(name string, src io.Reader) error {
	if name == s.failName {
		return errors.New("injected failure")
	}
	return s.RemoteFS.PutFile(name, src)
}

func TestApplierIsolatesItemFailures(t *testing.T) {
	local := t.TempDir()
	writeLocal(t, local, "a.txt", "a")
	writeLocal(t, local, "bad.txt", "b")
	writeLocal(t, local, "c.txt", "c")

	fs := memfs.New()
	store := &failingStore{RemoteFS: NewBillyRemote(fs), failName: "bad.txt"}
	a := &Applier{Store: store, BasePath: "/", LocalRoot: local}

	rep := a.Apply(&plan.Plan{Updates: []plan.FileUpdate{
		{Path: "a.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
		{Path: "bad.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
		{Path: "c.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
	}})

	// The failure is recorded and the plan continues.
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "put", rep.Failures[0].Verb)
	assert.Equal(t, "bad.txt", rep.Failures[0].Path)
	assert.Equal(t, 2, rep.Succeeded)

	_, err := fs.Stat("/c.txt")
	assert.NoError(t, err, "items after the failure must still be applied")
}

func TestApplierMissingLocalFileFails(t *testing.T) {
	a := &Applier{Store: NewBillyRemote(memfs.New()), BasePath: "/", LocalRoot: t.TempDir()}

	rep := a.Apply(&plan.Plan{Updates: []plan.FileUpdate{
		{Path: "ghost.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
	}})

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "put", rep.Failures[0].Verb)
	assert.Zero(t, rep.Succeeded)
}

// countingStore counts navigation calls.
type countingStore struct {
	RemoteFS
	cdCalls int
}

func (s *countingStore) ChangeDirectory(name string) error {
	s.cdCalls++
	return s.RemoteFS.ChangeDirectory(name)
}

func TestApplierReusesWorkingDirectoryCursor(t *testing.T) {
	local := t.TempDir()
	writeLocal(t, local, "site/a.txt", "a")
	writeLocal(t, local, "site/b.txt", "b")

	store := &countingStore{RemoteFS: NewBillyRemote(memfs.New())}
	a := &Applier{Store: store, BasePath: "/", LocalRoot: local}

	rep := a.Apply(&plan.Plan{Updates: []plan.FileUpdate{
		{Path: "site/a.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
		{Path: "site/b.txt", State: snapshot.FileOf("h"), Action: plan.CreateOrUpdate},
	}})

	require.Empty(t, rep.Failures)
	// One navigation for both files: cd "/" plus cd "site".
	assert.Equal(t, 2, store.cdCalls)
}
