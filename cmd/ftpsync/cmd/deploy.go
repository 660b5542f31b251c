package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkoeppen/ftpsync/internal/config"
	"github.com/tkoeppen/ftpsync/internal/engine"
	"github.com/tkoeppen/ftpsync/internal/plan"
	"github.com/tkoeppen/ftpsync/internal/scan"
)

var (
	deployJobs     int
	deployForce    bool
	deployDryRun   bool
	deployNoUpload bool
	deployDebug    bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy changed files to the remote store",
	Long: `Scans the base directory, diffs it against the persisted snapshot and
uploads what changed since the last run, removing what disappeared.
Unchanged files are never re-uploaded.

With --dry-run the plan is printed and nothing is applied or persisted.
With --no-upload the new snapshot is persisted but no remote operation
is performed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		creds, err := loadCreds()
		if err != nil {
			return err
		}

		if len(cfg.Hooks) > 0 {
			info("Running %d hook(s)", len(cfg.Hooks))
			config.RunHooks(cfg.Hooks, basePath, func(format string, a ...any) {
				detail(format, a...)
			})
		}

		jobs := deployJobs
		if jobs == 0 {
			jobs = cfg.Jobs
		}

		eng := engine.New(basePath, creds)
		res, err := eng.Deploy(cmd.Context(), engine.Options{
			Jobs:     jobs,
			Force:    deployForce,
			DryRun:   deployDryRun,
			NoUpload: deployNoUpload,
		})
		if err != nil {
			return err
		}

		info("Collected %d entries in %s using %d workers",
			res.Scan.Visited, res.Scan.Elapsed.Round(time.Millisecond), res.Scan.Jobs)
		for _, sk := range res.Scan.Skipped {
			warnf("skipped %s: %v", sk.Path, sk.Err)
		}

		if deployDebug {
			printModes(res.Scan.Table.Entries())
		}

		if res.Plan.IsEmpty() {
			info("Nothing to deploy.")
			return nil
		}

		if deployDryRun || deployNoUpload || verbose {
			for _, upd := range res.Plan.Updates {
				detailPlan(upd)
			}
		}

		switch {
		case deployDryRun:
			info("Dry run — %d operation(s) planned, nothing applied.", res.Plan.Len())
		case deployNoUpload:
			info("Snapshot updated — %d operation(s) skipped (--no-upload).", res.Plan.Len())
		default:
			for _, f := range res.Report.Failures {
				errorf("%s %s: %v", f.Verb, f.Path, f.Err)
			}
			info("Deploy complete: %d applied, %d failed.",
				res.Report.Succeeded, len(res.Report.Failures))
			if len(res.Report.Failures) > 0 {
				return fmt.Errorf("%d operation(s) failed", len(res.Report.Failures))
			}
		}
		return nil
	},
}

// printModes emits the full per-path mode listing (--debug).
func printModes(entries map[string]scan.WorkingEntry) {
	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Printf("  %-9s  %s\n", entries[path].Mode, path)
	}
}

func detailPlan(upd plan.FileUpdate) {
	kind := "file"
	if upd.State.IsDir() {
		kind = "dir"
	}
	if upd.Action == plan.Delete {
		warnColor.Printf("  delete %-4s  %s\n", kind, upd.Path)
	} else {
		okColor.Printf("  upload %-4s  %s\n", kind, upd.Path)
	}
}

func init() {
	deployCmd.Flags().IntVarP(&deployJobs, "jobs", "j", 0, "scan parallelism (default: host parallelism)")
	deployCmd.Flags().BoolVarP(&deployForce, "force", "f", false, "treat every tracked path as changed")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "plan only: no remote traffic, no snapshot write")
	deployCmd.Flags().BoolVar(&deployNoUpload, "no-upload", false, "persist the snapshot but skip remote application")
	deployCmd.Flags().BoolVar(&deployDebug, "debug", false, "print the full per-path mode listing")
	rootCmd.AddCommand(deployCmd)
}
