// Package remote applies a sync plan to an abstract remote file store.
// The store is modeled as a capability interface with current-directory
// semantics, so any transport (or an in-memory fake) can satisfy it.
package remote

import "io"

// RemoteFS is the capability the applier needs from a remote file store.
// All operations are scoped to the store's current working directory.
// Navigation happens through repeated ChangeDirectory calls, one of "/",
// ".." or a single path component at a time.
type RemoteFS interface {
	// ChangeDirectory moves the working directory. The target must exist.
	ChangeDirectory(name string) error

	// MakeDirectory creates a directory in the working directory. It may
	// fail when the directory already exists; callers navigating lazily
	// tolerate that.
	MakeDirectory(name string) error

	// RemoveFile deletes a file in the working directory.
	RemoveFile(name string) error

	// RemoveDirectory deletes a directory in the working directory. The
	// directory is expected to be empty.
	RemoveDirectory(name string) error

	// PutFile streams src to a file in the working directory, overwriting
	// any existing content.
	PutFile(name string, src io.Reader) error
}
