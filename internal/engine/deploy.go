// Package engine orchestrates the deploy pipeline: load snapshot, scan,
// plan, apply, persist.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/tkoeppen/ftpsync/internal/plan"
	"github.com/tkoeppen/ftpsync/internal/remote"
	"github.com/tkoeppen/ftpsync/internal/scan"
	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

// Engine runs deploys for one base directory. Connect is called lazily,
// only when a non-empty plan must actually be applied.
type Engine struct {
	BasePath   string
	RemoteBase string // remote directory deploys root at
	Connect    func(ctx context.Context) (remote.RemoteFS, error)
}

// Options configures one deploy run.
type Options struct {
	Jobs  int  // scan parallelism; 0 means host parallelism
	Force bool // treat every tracked path as changed

	// DryRun computes and reports the plan but applies nothing and does
	// not persist the new snapshot.
	DryRun bool

	// NoUpload persists the new snapshot but skips remote application.
	NoUpload bool
}

// Result carries everything one run produced.
type Result struct {
	Scan *scan.Result
	Plan *plan.Plan

	// Next is the snapshot the run persisted (or would persist, under
	// DryRun).
	Next snapshot.Snapshot

	// Report is nil when remote application was skipped.
	Report *remote.ApplyReport
}

// Deploy runs the full pipeline. Fatal errors (unreadable snapshot,
// inaccessible base directory, failed connect/login, failed snapshot
// write) abort the run before the new snapshot is written; per-item
// scan and apply failures are carried in the result instead.
func (e *Engine) Deploy(ctx context.Context, opts Options) (*Result, error) {
	prev, err := snapshot.Load(e.BasePath)
	if err != nil {
		return nil, err
	}

	matcher, err := scan.LoadMatcher(e.BasePath)
	if err != nil {
		return nil, err
	}

	scanner := &scan.Scanner{
		Root:   e.BasePath,
		Jobs:   opts.Jobs,
		Force:  opts.Force,
		Ignore: matcher,
	}
	scanRes, err := scanner.Scan(prev)
	if err != nil {
		return nil, err
	}

	p, next := plan.Build(scanRes.Table.Entries())
	res := &Result{Scan: scanRes, Plan: p, Next: next}

	if !opts.DryRun && !opts.NoUpload && !p.IsEmpty() {
		store, err := e.Connect(ctx)
		if err != nil {
			return nil, err
		}
		if closer, ok := store.(io.Closer); ok {
			defer closer.Close()
		}

		applier := &remote.Applier{
			Store:     store,
			BasePath:  e.RemoteBase,
			LocalRoot: e.BasePath,
		}
		res.Report = applier.Apply(p)
	}

	if !opts.DryRun {
		if err := snapshot.Save(e.BasePath, next); err != nil {
			return nil, fmt.Errorf("persisting snapshot: %w", err)
		}
	}

	return res, nil
}
