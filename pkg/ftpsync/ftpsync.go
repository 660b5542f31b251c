// Package ftpsync provides the public Go library API for ftpsync.
//
// ftpsync incrementally synchronizes a local directory tree to a remote
// file store, uploading only what changed since the last run and removing
// what disappeared. This package exposes a small client for embedding
// that pipeline in other Go programs.
//
// # Basic Usage
//
//	client, err := ftpsync.New(ftpsync.Options{BasePath: "/srv/site"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Deploy(ctx, ftpsync.DeployOptions{})
package ftpsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tkoeppen/ftpsync/internal/config"
	"github.com/tkoeppen/ftpsync/internal/engine"
	"github.com/tkoeppen/ftpsync/internal/plan"
	"github.com/tkoeppen/ftpsync/internal/scan"
)

// Options configures a Client.
type Options struct {
	// BasePath is the directory to synchronize. Defaults to ".".
	BasePath string

	// Logf receives progress and hook output. Defaults to discarding.
	Logf func(format string, args ...any)
}

// DeployOptions configures one deploy run.
type DeployOptions struct {
	Jobs     int  // scan parallelism; 0 means the configured or host default
	Force    bool // treat every tracked path as changed
	DryRun   bool // plan only: no remote traffic, no snapshot write
	NoUpload bool // persist the snapshot but skip remote application
}

// PlannedAction is one remote operation the run planned.
type PlannedAction struct {
	Path      string
	Delete    bool
	Directory bool
}

// Failure is a remote operation that could not be completed. Failures do
// not abort a deploy; callers needing strict consistency should re-run
// when any are reported.
type Failure struct {
	Verb string
	Path string
	Err  error
}

// DeployResult summarizes one run.
type DeployResult struct {
	Visited  int
	Elapsed  time.Duration
	Actions  []PlannedAction
	Applied  int
	Failures []Failure
}

// Client runs deploys for one base directory.
type Client struct {
	basePath string
	logf     func(format string, args ...any)
}

// New validates the base directory and returns a Client.
func New(opts Options) (*Client, error) {
	base := opts.BasePath
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base path: %w", err)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("base path %s is not a directory", abs)
	}

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Client{basePath: abs, logf: logf}, nil
}

// Deploy runs hooks, scans, plans and applies, per the stored
// configuration and credentials.
func (c *Client) Deploy(ctx context.Context, opts DeployOptions) (*DeployResult, error) {
	cfg, err := config.Load(c.basePath)
	if err != nil {
		return nil, err
	}
	creds, err := config.LoadCreds(c.basePath)
	if err != nil {
		return nil, err
	}

	config.RunHooks(cfg.Hooks, c.basePath, c.logf)

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = cfg.Jobs
	}

	eng := engine.New(c.basePath, creds)
	res, err := eng.Deploy(ctx, engine.Options{
		Jobs:     jobs,
		Force:    opts.Force,
		DryRun:   opts.DryRun,
		NoUpload: opts.NoUpload,
	})
	if err != nil {
		return nil, err
	}

	out := &DeployResult{
		Visited: res.Scan.Visited,
		Elapsed: res.Scan.Elapsed,
	}
	for _, upd := range res.Plan.Updates {
		out.Actions = append(out.Actions, PlannedAction{
			Path:      upd.Path,
			Delete:    upd.Action == plan.Delete,
			Directory: upd.State.IsDir(),
		})
	}
	if res.Report != nil {
		out.Applied = res.Report.Succeeded
		for _, f := range res.Report.Failures {
			out.Failures = append(out.Failures, Failure{Verb: f.Verb, Path: f.Path, Err: f.Err})
		}
	}
	return out, nil
}

// Files lists every path a deploy would visit, honoring the ignore file.
func (c *Client) Files() ([]string, error) {
	matcher, err := scan.LoadMatcher(c.basePath)
	if err != nil {
		return nil, err
	}
	return scan.List(c.basePath, matcher)
}
